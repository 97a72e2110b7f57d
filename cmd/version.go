package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burgertron6/Guilded-NET.github.io/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
