// Package cli implements the blogforge command line interface.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// Execute runs the CLI with the given arguments and returns an exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "blogforge",
		Short:        "Generate and publish AI-written blog posts",
		SilenceUsage: true,
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(postsCmd())

	return cmd
}
