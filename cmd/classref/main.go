// Package main provides the entry point for the classref CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/classref/classref/cmd/classref/commands"
	"github.com/classref/classref/pkg/version"
)

var quiet bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "classref",
		Short: "classref - XML class-reference checker",
		Long: `classref cross-references class names in XML configuration files
against a declared-class manifest and reports undeclared or malformed
references with file and line context.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, commands.ErrIssuesFound) {
			os.Exit(2)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "classref %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
