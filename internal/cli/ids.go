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
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tochemey/goplatform/identity"
)

func newIDsCommand() *cobra.Command {
	var merge []string
	cmd := &cobra.Command{
		Use:   "ids <plugin> <file>",
		Short: "Compile an identifier namespace",
		Long: `Compile the namespace file of a plugin: every empty leaf becomes
"<namespace>:<plugin>.<key>". Compiled namespaces given with --merge are
merged into the result; conflicting values fail.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := readNamespace(args[1])
			if err != nil {
				return err
			}
			compiled := identity.Compile(identity.PluginID(args[0]), ns)

			for _, path := range merge {
				other, err := readNamespace(path)
				if err != nil {
					return err
				}
				if compiled, err = identity.Merge(compiled, other); err != nil {
					return err
				}
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(compiled); err != nil {
				return err
			}
			return encoder.Close()
		},
	}
	cmd.Flags().StringSliceVarP(&merge, "merge", "m", nil, "compiled namespace files to merge")
	return cmd
}

func readNamespace(path string) (identity.Namespace, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ns := make(identity.Namespace)
	if err := yaml.Unmarshal(content, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}
