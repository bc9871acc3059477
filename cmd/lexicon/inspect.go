// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lexicon/internal/lexicon"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <rules>",
	Short: "Print the compiled plan of a rule file",
	Long: `Inspect compiles a rule file and prints its groups and resolved chain,
with the inclusion chance and token count of every chain entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	src, err := resolveSource(ctx, args[0], cfg)
	if err != nil {
		return err
	}
	lex, err := lexicon.New(ctx, src,
		lexicon.WithCaps(cfg.Generator.Caps),
		lexicon.WithLogger(newLogger(cfg.Generator.Verbose)),
	)
	if err != nil {
		return err
	}
	summary := lex.Plan().Summary()

	switch format {
	case "yaml", "":
		data, err := yaml.Marshal(&summary)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func init() {
	inspectCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(inspectCmd)
}
