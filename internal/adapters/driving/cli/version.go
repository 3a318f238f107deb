package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/glazed/internal/connectors/tiled"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Prints the glazed version, the Tiled API it speaks and the Go runtime it was built with.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("glazed version %s\n", version)
		cmd.Printf("  tiled api: /%s\n", tiled.APIPrefix)
		cmd.Printf("  go:        %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
