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
	"slices"

	"github.com/spf13/cobra"

	"github.com/tochemey/goplatform/loader"
	"github.com/tochemey/goplatform/model"
)

func newDescribeCommand(opts *options) *cobra.Command {
	var instances bool
	cmd := &cobra.Command{
		Use:   "describe <files...>",
		Short: "Describe the classes of model files",
		Long:  "Load model files and print every class with its kind and merged attributes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := bootstrap(cmd, opts)
			if err != nil {
				return err
			}
			session, err := env.session()
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := loader.LoadFile(session, path); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			ids := session.ClassIDs()
			slices.Sort(ids)
			for _, id := range ids {
				class, err := session.GetClass(id)
				if err != nil {
					return err
				}
				titleColor.Fprintln(out, class.ToIntlString())
				if class.Extends() != "" {
					fmt.Fprintf(out, "  extends %s\n", class.Extends())
				}
				for _, attr := range class.Attributes() {
					fmt.Fprintf(out, "  %s: %s (from %s)\n", attr.Name, specString(attr.Spec), attr.Owner)
				}
			}

			if instances {
				refs := session.Instances()
				slices.Sort(refs)
				for _, ref := range refs {
					doc, err := session.GetInstance(ref, "")
					if err != nil {
						return err
					}
					fmt.Fprintln(out, model.Describe(doc))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&instances, "instances", "i", false, "also list the loaded documents")
	return cmd
}

// specString renders a type spec, e.g. class:core.ArrayOf<class:core.Type>
func specString(spec model.TypeSpec) string {
	switch {
	case spec.Of != nil:
		return fmt.Sprintf("%s<%s>", spec.Class, specString(*spec.Of))
	case spec.Target != "":
		return fmt.Sprintf("%s<%s>", spec.Class, spec.Target)
	default:
		return string(spec.Class)
	}
}
