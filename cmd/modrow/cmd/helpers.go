package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// versionPattern matches Minecraft release versions such as "1.20.4" or "1.21".
var versionPattern = regexp.MustCompile(`^1\.\d{1,2}(\.\d{1,2})?$`)

// knownLoaders are the loaders offered by default. Others are allowed with a warning.
var knownLoaders = []string{"fabric", "forge", "quilt", "neoforge", "iris"}

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// addTargetFlags registers the flags that describe what to reconcile.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("collection", "c", "", "Collection ID (from https://modrinth.com/collection/<id>)")
	cmd.Flags().StringP("version", "v", "", `Minecraft version ("1.20.4", "1.21")`)
	cmd.Flags().StringP("loader", "l", "", `Loader to use ("fabric", "forge", "quilt", "iris"...) (default from config)`)
	cmd.Flags().StringP("dir", "d", "", "Directory to download mods to (default from config: ./mods)")
	cmd.Flags().BoolP("update", "u", false, "Replace existing mods built for another version")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("version")
}

// targetFromFlags reads and validates the reconciliation inputs.
func targetFromFlags(cmd *cobra.Command, settings core.Settings, logger *log.Logger) (core.Target, error) {
	collection, _ := cmd.Flags().GetString("collection")
	version, _ := cmd.Flags().GetString("version")
	loader, _ := cmd.Flags().GetString("loader")
	dir, _ := cmd.Flags().GetString("dir")
	update, _ := cmd.Flags().GetBool("update")

	if loader == "" {
		loader = settings.DefaultLoader
	}
	if dir == "" {
		dir = settings.DefaultDirectory
	}

	t := core.Target{
		CollectionID:   strings.TrimSpace(collection),
		RuntimeVersion: strings.TrimSpace(version),
		Loader:         strings.TrimSpace(loader),
		Directory:      core.ExpandPath(dir),
		UpdateExisting: update,
	}
	if err := validateTarget(t); err != nil {
		return core.Target{}, err
	}
	if !slices.Contains(knownLoaders, t.Loader) {
		logger.Warn("unrecognized loader, builds must list it exactly", "loader", t.Loader)
	}
	return t, nil
}

// validateTarget checks the inputs the core expects to be well formed.
func validateTarget(t core.Target) error {
	if t.CollectionID == "" {
		return fmt.Errorf("collection ID is required")
	}
	if !versionPattern.MatchString(t.RuntimeVersion) {
		return fmt.Errorf("invalid Minecraft version %q: use 1.X, 1.X.X, or 1.XX.X", t.RuntimeVersion)
	}
	if t.Loader == "" {
		return fmt.Errorf("loader is required")
	}
	return nil
}

// outputFormat reads and validates --output.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case "", outputTable:
		return outputTable, nil
	case outputJSON, outputYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, or yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}
