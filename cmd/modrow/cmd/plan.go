package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what sync would do without downloading",
	Long: `Resolve every mod in the collection against the target directory and
print the decision for each: install, replace, or skip (with the reason).

Nothing is downloaded or deleted, and the directory is not created.`,
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

		target, err := targetFromFlags(cmd, d.settings, d.logger)
		if err != nil {
			return err
		}

		summary, err := d.reconciler(core.ReconcilerOptions{}).Plan(cmd.Context(), target)
		if err != nil {
			return err
		}

		if format != outputTable {
			return writeStructured(os.Stdout, format, summary)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Mod\tAction\tFile\tDetail")
		for _, o := range summary.Outcomes {
			detail := o.Reason
			switch {
			case o.Err != nil:
				detail = o.Err.Error()
			case o.Decision.Action == core.ActionReplace:
				detail = "replaces " + o.Decision.OldFilename
			case o.Build != "":
				detail = "build " + o.Build
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Name, o.Decision.Action, o.Filename, detail)
		}
		_ = w.Flush()

		fmt.Fprintf(os.Stdout, "\n%d to download, %d total\n", countChanges(summary), summary.Total)
		return nil
	},
}

// countChanges counts planned installs and replacements.
func countChanges(s *core.RunSummary) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Decision.Action != core.ActionSkip {
			n++
		}
	}
	return n
}

func init() {
	addTargetFlags(planCmd)
	planCmd.Flags().StringP("output", "o", outputTable, "Output format: table, json, or yaml")
	rootCmd.AddCommand(planCmd)
}
