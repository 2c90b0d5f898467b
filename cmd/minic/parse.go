package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/diagfmt"
	"minic/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.mc",
	Short: "Parse a Mini-C source file and report diagnostics",
	Long: `Parse runs the front end through syntax analysis: scanning, token
repair and recursive descent parsing. Diagnostics go to stderr; the exit
code is non-zero when the source has errors the repairer could not fix`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fs, fileID, err := loadOne(args[0])
	if err != nil {
		return err
	}
	result := driver.Compile(fs, fileID, driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
	})

	bag := result.AllDiagnostics()
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Width:     diagfmt.TermWidth(os.Stderr),
			ShowNotes: true,
		})
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
			diagfmt.FixesPretty(os.Stdout, result.Fixes, result.FileSet, diagfmt.PrettyOpts{
				Color: useColor(cmd, os.Stdout),
			})
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Valid() {
		return fmt.Errorf("%s: %d error(s)", args[0], bag.Len())
	}
	return nil
}
