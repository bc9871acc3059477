// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lexicon/internal/lexicon"
	"github.com/pdiddy/lexicon/internal/rules"
	"github.com/pdiddy/lexicon/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <rules>...",
	Short: "Compile rule files and report errors",
	Long: `Check compiles each rule file and prints "ok" with the chain length, or
the file, line, and kind of the first parse error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Generator.Verbose)
	out := cmd.OutOrStdout()

	failed := 0
	for _, ref := range args {
		lex, err := lexicon.New(context.Background(), source.Open(ref, cfg.HTTP), lexicon.WithLogger(log))
		if err != nil {
			failed++
			var pe *rules.ParseError
			if errors.As(err, &pe) {
				fmt.Fprintf(out, "%s:%d: %s (%s)\n", ref, pe.Line, pe.Msg, pe.Kind)
				continue
			}
			fmt.Fprintf(out, "%s: %v\n", ref, err)
			continue
		}
		fmt.Fprintf(out, "ok  %s (%d chain entries)\n", ref, lex.Plan().Len())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d rule file(s) failed", failed, len(args))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
