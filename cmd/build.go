package cmd

import (
	"github.com/spf13/cobra"
)

// buildCmd is the explicit form of the root command.
var buildCmd = &cobra.Command{
	Use:   "build [source]",
	Short: "Builds one page per Markdown directory of the source tree",
	Long: `The build command discovers every directory under the source root that
directly contains a .md file, renders each file in it through the Markdown
pipeline, substitutes the results into the template's
<!-- Template: <file> --> markers and rewrites <!-- relative --> markers.
Each directory becomes <output>/<relative path>.html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(args)
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
