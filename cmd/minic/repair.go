package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/diagfmt"
	"minic/internal/driver"
)

var repairCmd = &cobra.Command{
	Use:   "repair [flags] file.mc",
	Short: "Show the repairs applied to a Mini-C token stream",
	Long: `Repair scans a Mini-C source file, applies the heuristic error
catalogue to its token stream and lists every fix: keyword typos,
missing delimiters, missing terminators`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	repairCmd.Flags().Bool("tokens", false, "also dump the repaired token stream")
}

func runRepair(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}

	result, err := driver.Repair(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}

	if result.LexBag.Len() > 0 {
		result.LexBag.Sort()
		diagfmt.Pretty(os.Stderr, result.LexBag, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
			Width: diagfmt.TermWidth(os.Stderr),
		})
	}

	switch format {
	case "pretty":
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if len(result.Fixes) == 0 && !quiet {
			fmt.Fprintln(os.Stdout, "no repairs needed")
		}
		diagfmt.FixesPretty(os.Stdout, result.Fixes, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stdout),
		})
		if showTokens {
			return diagfmt.FormatTokensPretty(os.Stdout, result.Repaired, result.FileSet)
		}
		return nil
	case "json":
		if err := diagfmt.FixesJSON(os.Stdout, result.Fixes, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
		}); err != nil {
			return err
		}
		if showTokens {
			return diagfmt.FormatTokensJSON(os.Stdout, result.Repaired)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
