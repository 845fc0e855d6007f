package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/barysiuk/modrow/internal/tui"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download and update mods from a collection",
	Long: `Download every mod in a Modrinth collection that is missing from the
target directory.

Each mod is saved as "<title>-<minecraft version>.jar" (".zip" for iris
shader packs). Mods already present are skipped. With --update, a mod whose
file was written for a different Minecraft version is downloaded again and
the previous file is removed once the new one is in place.

Up to 5 mods are processed at a time (see "workers" in modrow config).
A failure for one mod never stops the others.`,
	Example: `  modrow sync -c 5OBQuutT -v 1.20.4 -l fabric
  modrow sync -c 5OBQuutT -v 1.21 -l iris -d ./shaderpacks --update`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		target, err := targetFromFlags(cmd, d.settings, d.logger)
		if err != nil {
			return err
		}

		useTUI, _ := cmd.Flags().GetBool("tui")

		var summary *core.RunSummary
		if useTUI {
			// Log lines would tear the progress view; the final report lists errors.
			d.logger = log.New(io.Discard)
			header := fmt.Sprintf("%s · %s · %s", target.CollectionID, target.RuntimeVersion, target.Loader)
			summary, err = tui.Run(header, func(h tui.Hooks) (*core.RunSummary, error) {
				r := d.reconciler(core.ReconcilerOptions{OnStart: h.OnStart, OnOutcome: h.OnOutcome})
				return r.Reconcile(cmd.Context(), target)
			})
			if err != nil {
				return err
			}
		} else {
			summary, err = d.reconciler(core.ReconcilerOptions{}).Reconcile(cmd.Context(), target)
			if err != nil {
				return err
			}
			for _, o := range summary.Outcomes {
				fmt.Fprintln(os.Stdout, tui.OutcomeLine(o))
			}
			fmt.Fprintf(os.Stdout, "\nDownloaded: %d / %d mods\n", summary.Installed, summary.Total)
		}

		return syncError(summary)
	},
}

// syncError reports every failed mod, or returns nil when all succeeded.
func syncError(summary *core.RunSummary) error {
	if failed := len(summary.Failed()); failed > 0 {
		return fmt.Errorf("%d mod(s) failed to sync: %w", failed, summary.Err())
	}
	return nil
}

func init() {
	addTargetFlags(syncCmd)
	syncCmd.Flags().Bool("tui", false, "Show live progress in an interactive view")
	rootCmd.AddCommand(syncCmd)
}
