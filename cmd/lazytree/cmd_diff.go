package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lazytree/diff"
	"go.jacobcolvin.com/lazytree/schema"
)

var errDifferencesFound = errors.New("differences found")

func newDiffCommand(tracePaths *string) *cobra.Command {
	diffCfg := diff.NewConfig()

	var schemaPath string

	cmd := &cobra.Command{
		Use:   "diff <expected> <actual>",
		Short: "Report the differences between two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := diffCfg.NewMode()
			if err != nil {
				return err
			}

			expected, closeExpected, err := openDocument(args[0], *tracePaths)
			if err != nil {
				return err
			}
			defer closeExpected()

			actual, closeActual, err := openDocument(args[1], *tracePaths)
			if err != nil {
				return err
			}
			defer closeActual()

			var info *diff.PropertyInfo

			if schemaPath != "" {
				raw, err := readInput(schemaPath)
				if err != nil {
					return fmt.Errorf("read schema: %w", err)
				}

				obj, err := schema.ParseJSONSchema(raw)
				if err != nil {
					return fmt.Errorf("parse schema: %w", err)
				}

				info = propertyInfoFromSchema(obj)
			}

			diffs, err := diff.Compare(expected, actual, mode, info)
			if err != nil {
				return err
			}

			if len(diffs) == 0 {
				fmt.Fprintln(os.Stdout, "no differences")

				return nil
			}

			for _, d := range diffs {
				fmt.Fprintf(os.Stdout, "%s %s\n", d.Kind, d.Path.WithDollar())
			}

			return errDifferencesFound
		},
	}

	diffCfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&schemaPath, "schema", "", "JSON Schema file supplying per-property order/additional overrides")

	if err := diffCfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}
