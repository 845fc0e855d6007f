package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change modrow settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Print the settings after applying ~/.modrow/config.json and the
MODROW_API_URL and MODROW_WORKERS environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		if format == outputTable {
			format = outputJSON
		}

		fmt.Fprintf(os.Stdout, "# %s\n", d.config.ConfigPath())
		return writeStructured(os.Stdout, format, d.settings)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting in ~/.modrow/config.json.

Keys: apiBaseURL, userAgent, workers, requestTimeout, defaultDirectory, defaultLoader`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		cfg, err := d.config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Settings.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := d.config.Save(cfg); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringP("output", "o", outputJSON, "Output format: json or yaml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
