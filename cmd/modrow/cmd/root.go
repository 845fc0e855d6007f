package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "modrow",
	Short: "Get your mods in a row - sync a Modrinth collection into a mods folder",
	Long: `modrow keeps a local mods directory in line with a Modrinth collection.

For every project in the collection it picks the newest build for your
Minecraft version and loader, downloads what is missing, and with --update
replaces files built for a different version.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("modrow %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Show debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only log errors")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
