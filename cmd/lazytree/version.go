package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lazytree/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lazytree %s (%s, %s/%s, rev %s)\n",
				versionOrDev(), version.GoVersion, version.GoOS, version.GoArch, version.Revision)

			return nil
		},
	}
}

func versionOrDev() string {
	if version.Version == "" {
		return "dev"
	}

	return version.Version
}
