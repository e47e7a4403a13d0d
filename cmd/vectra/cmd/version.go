package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/vectra/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		ver, commit, date := version.Info()
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "vectra version %s\n", ver)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", commit)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
