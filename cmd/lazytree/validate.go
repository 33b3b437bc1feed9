package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lazytree/schema"
)

var errValidationFailed = errors.New("document failed validation")

func newValidateCommand(tracePaths *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema.json> [file]",
		Short: "Validate a document's top-level properties against a JSON Schema",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			schemaData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}

			obj, err := schema.ParseJSONSchema(schemaData)
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

			violation, err := schema.ValidateObject(h, obj)
			if err != nil {
				return err
			}

			if violation == nil {
				fmt.Fprintln(os.Stdout, "ok")

				return nil
			}

			for _, e := range violation.Errors {
				fmt.Fprintln(os.Stderr, e.Error())
			}

			return errValidationFailed
		},
	}

	return cmd
}
