// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lexicon/internal/catalog"
	"github.com/pdiddy/lexicon/internal/lexicon"
	"github.com/pdiddy/lexicon/internal/source"
	"github.com/pdiddy/lexicon/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [rules]",
	Short: "Generate words from a rule file",
	Long: `Generate compiles a rule file and prints generated words, one per line.

The rules argument is a file path, an http(s) URL, or the name of an indexed
rule set. Without an argument the "rules" config key is used.

With --interactive, commands are read from stdin: an empty line prints a
word, a number N prints N words, "r" reloads the rules, and "q" quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ref := cfg.Generator.Rules
	if len(args) > 0 {
		ref = args[0]
	}
	if ref == "" {
		return fmt.Errorf("rules required: pass a rule file, URL, or catalog name")
	}

	ctx := context.Background()
	src, err := resolveSource(ctx, ref, cfg)
	if err != nil {
		return err
	}

	opts := []lexicon.Option{
		lexicon.WithCaps(cfg.Generator.Caps),
		lexicon.WithLogger(newLogger(cfg.Generator.Verbose)),
	}
	if cfg.Generator.Seed != 0 {
		opts = append(opts, lexicon.WithRand(lexicon.NewRand(cfg.Generator.Seed)))
	}

	lex, err := lexicon.New(ctx, src, opts...)
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		return runInteractive(ctx, lex, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	words := lex.GenerateN(max(cfg.Generator.Count, 1))

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(words)
	}
	for _, w := range words {
		fmt.Fprintln(cmd.OutOrStdout(), w)
	}
	return nil
}

// resolveSource maps a rules reference to a Source. URLs and existing
// files are used directly; anything else is looked up in the catalog.
func resolveSource(ctx context.Context, ref string, cfg types.Config) (source.Source, error) {
	if strings.Contains(ref, "://") {
		return source.Open(ref, cfg.HTTP), nil
	}
	if _, err := os.Stat(ref); err == nil {
		return source.File(ref), nil
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rs, err := store.Lookup(ctx, ref)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%s is not a file and not in the catalog (run \"lexicon catalog index\")", ref)
		}
		return nil, err
	}
	if rs.Status != types.RuleSetOK {
		return nil, fmt.Errorf("%s: line %d: %s", rs.Path, rs.ErrorLine, rs.Error)
	}
	return source.File(rs.Path), nil
}

// runInteractive serves generate/reload commands read line by line from in.
func runInteractive(ctx context.Context, lex *lexicon.Lexicon, in io.Reader, out, errOut io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			fmt.Fprintln(out, lex.Generate())
		case "r", "reload":
			if _, err := lex.Reload(ctx); err != nil {
				fmt.Fprintf(errOut, "reload failed: %v\n", err)
				continue
			}
			fmt.Fprintln(errOut, "rules reloaded")
		case "q", "quit":
			return nil
		default:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 {
				fmt.Fprintf(errOut, "unknown command %q: use <enter>, N, r, or q\n", line)
				continue
			}
			for _, w := range lex.GenerateN(n) {
				fmt.Fprintln(out, w)
			}
		}
	}
	return sc.Err()
}

func init() {
	generateCmd.Flags().IntP("count", "n", 1, "number of words to generate")
	generateCmd.Flags().Bool("caps", false, "uppercase the first character of each word")
	generateCmd.Flags().Uint64("seed", 0, "random seed for reproducible output (0 = random)")
	generateCmd.Flags().BoolP("interactive", "i", false, "read generate/reload commands from stdin")
	generateCmd.Flags().Bool("json", false, "output words as a JSON array")

	viper.BindPFlag("count", generateCmd.Flags().Lookup("count"))
	viper.BindPFlag("caps", generateCmd.Flags().Lookup("caps"))
	viper.BindPFlag("seed", generateCmd.Flags().Lookup("seed"))

	rootCmd.AddCommand(generateCmd)
}
