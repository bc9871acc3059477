// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexicon/internal/catalog"
	"github.com/pdiddy/lexicon/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the rule catalog (index, list, export)",
	Long: `Catalog manages a local SQLite index of the rule files in the rules
directory. Indexed rule sets can be passed to generate and inspect by name.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Compile and index every rule file in the rules directory",
	Long: `Index compiles each rule file in the rules directory and records its
chain, group and token counts, or its parse error. Unchanged files are skipped
on subsequent runs and records of deleted files are removed.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d rule file(s) failed to compile", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed rule sets",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	sets, err := store.List(context.Background(), types.RuleSetStatus(status))
	if err != nil {
		return err
	}
	return formatListOutput(sets, jsonOutput)
}

func formatListOutput(sets []types.RuleSet, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sets)
	}

	if len(sets) == 0 {
		fmt.Println("No rule sets indexed.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-6s  %-6s  %s\n", "Name", "Status", "Groups", "Tokens", "Chain")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))

	for _, rs := range sets {
		name := rs.Name
		if len(name) > 20 {
			name = name[:17] + "..."
		}
		chain := strings.Join(rs.Chain, " ")
		if rs.Status == types.RuleSetFailed {
			chain = fmt.Sprintf("line %d: %s", rs.ErrorLine, rs.Error)
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-6d  %-6d  %s\n", name, rs.Status, rs.Groups, rs.Tokens, chain)
	}

	fmt.Fprintf(os.Stdout, "\n%d rule sets\n", len(sets))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		err = store.ExportYAML(context.Background())
		format = "yaml"
	case "json":
		err = store.ExportJSON(context.Background())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", store.ExportPath(format))
	return nil
}

// --- shared helpers ---

func openCatalog() (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(cfg.Catalog)
}

func init() {
	catalogListCmd.Flags().String("status", "", "filter by status: ok or failed")
	catalogListCmd.Flags().Bool("json", false, "output rule sets as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
