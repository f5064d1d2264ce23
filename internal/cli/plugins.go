// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tochemey/goplatform/platform"
)

func newPluginsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the registered plugins after bootstrap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := bootstrap(cmd, opts)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "PLUGIN\tVERSION\tSTATUS")
			for _, info := range env.platform.GetPluginInfos() {
				status := warnColor.Sprint(info.Status)
				if info.Status == platform.PluginRunning {
					status = successColor.Sprint(info.Status)
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", info.ID, info.Version, status)
			}

			stats := env.platform.Stats()
			fmt.Fprintf(writer, "\nloaded %d, started %d, resolved %d, failed %d\n",
				stats.LoaderInvocations, stats.FactoryInvocations, stats.Resolutions, stats.Failures)
			return writer.Flush()
		},
	}
}
