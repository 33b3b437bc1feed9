// Command lazytree inspects, validates, and diffs JSON and YAML documents
// without fully parsing them: every subcommand is a thin wrapper over the
// lazytree library's node store and virtual tree.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lazytree/log"
	"go.jacobcolvin.com/lazytree/profile"
)

func main() {
	os.Exit(run())
}

func run() int {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	var (
		tracePaths string
		profiler   *profile.Profiler
	)

	rootCmd := &cobra.Command{
		Use:           "lazytree",
		Short:         "Inspect, validate, and diff JSON/YAML documents without fully parsing them",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			profiler = profileCfg.NewProfiler()

			return profiler.Start()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&tracePaths, "trace-paths", "",
		"append every resolved path to this file")

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profileCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newGetCommand(&tracePaths),
		newValidateCommand(&tracePaths),
		newDiffCommand(&tracePaths),
		newBrowseCommand(&tracePaths),
		newVersionCommand(),
	)

	execErr := rootCmd.Execute()

	if profiler != nil {
		if stopErr := profiler.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "stop profiler: %v\n", stopErr)
		}
	}

	if execErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", execErr)

		return 1
	}

	return 0
}
