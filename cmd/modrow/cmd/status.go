package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the mods installed in a directory",
	Long: `List the files in the mods directory together with the identifier
modrow matches them by (the file name without extension and version suffix).`,
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

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = d.settings.DefaultDirectory
		}
		dir = core.ExpandPath(dir)

		var items []core.InventoryItem
		if _, err := os.Stat(dir); err == nil {
			items, err = core.NewScanner().Scan(dir)
			if err != nil {
				return err
			}
		}

		if format != outputTable {
			if items == nil {
				items = []core.InventoryItem{}
			}
			return writeStructured(os.Stdout, format, items)
		}

		if len(items) == 0 {
			fmt.Fprintf(os.Stdout, "No mods in %s\n", dir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Mod\tFile")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\n", item.ID, item.Filename)
		}
		_ = w.Flush()

		fmt.Fprintf(os.Stdout, "\n%d mod(s) in %s\n", len(items), dir)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringP("dir", "d", "", "Mods directory (default from config: ./mods)")
	statusCmd.Flags().StringP("output", "o", outputTable, "Output format: table, json, or yaml")
	rootCmd.AddCommand(statusCmd)
}
