package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lazytree/path"
)

func newGetCommand(tracePaths *string) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get <path> [file]",
		Short: "Resolve one path in a document and print its value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := path.Of(args[0])
			if err != nil {
				return err
			}

			var file string
			if len(args) == 2 {
				file = args[1]
			}

			h, closeFn, err := openDocument(file, *tracePaths)
			if err != nil {
				return err
			}
			defer closeFn()

			target := navigate(h, p)

			if target.IsUndefined() {
				return fmt.Errorf("no value at %s", p.WithDollar())
			}

			if raw {
				decl, err := target.Declaration()
				if err != nil {
					return err
				}

				fmt.Fprintln(os.Stdout, decl)

				return nil
			}

			v, err := target.Value()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, string(out))

			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the exact source declaration instead of a materialized value")

	return cmd
}
