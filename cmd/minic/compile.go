package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"minic/internal/diag"
	"minic/internal/diagfmt"
	"minic/internal/driver"
	"minic/internal/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.mc|dir]",
	Short: "Compile Mini-C sources to quadruple IR or assembly",
	Long: `Compile runs the full pipeline: scanning, repair, parsing, semantic
analysis and quadruple generation. Given a directory it compiles every
.mc file in it in parallel. Without arguments it reads minic.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	compileCmd.Flags().BoolP("optimize", "O", false, "run the quadruple optimizer")
	compileCmd.Flags().BoolP("emit-asm", "S", false, "emit x86-64 assembly instead of quadruples")
	compileCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	compileCmd.Flags().Int("jobs", 0, "parallel workers for directory compiles (0 = GOMAXPROCS)")
	compileCmd.Flags().Bool("no-cache", false, "disable the on-disk artifact cache for directory compiles")
}

func loadOne(path string) (*source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs, fileID, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	optimize, _ := cmd.Flags().GetBool("optimize")
	emitAsm, _ := cmd.Flags().GetBool("emit-asm")
	output, _ := cmd.Flags().GetString("output")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
		Optimize:       optimize,
		EmitAsm:        emitAsm,
		Timings:        timings,
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	} else {
		// без аргумента — берём цель из minic.toml
		manifest, found, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no minic.toml found\nplease specify the source explicitly, e.g.:\n  minic compile path/to/file.mc")
		}
		target = filepath.Join(manifest.Root, filepath.FromSlash(manifest.Config.Build.Main))
		if manifest.Config.Build.Optimize {
			opts.Optimize = true
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if info.IsDir() {
		return compileDir(cmd, target, opts, format, jobs, noCache)
	}
	return compileOne(cmd, target, opts, format, output)
}

func compileOne(cmd *cobra.Command, path string, opts driver.Options, format, output string) error {
	fs, fileID, err := loadOne(path)
	if err != nil {
		return err
	}
	result := driver.Compile(fs, fileID, opts)
	if err := reportResult(cmd, path, result, opts, format, output); err != nil {
		return err
	}
	if !result.Valid() {
		return fmt.Errorf("%s: compilation failed", path)
	}
	return nil
}

func compileDir(cmd *cobra.Command, dir string, opts driver.Options, format string, jobs int, noCache bool) error {
	var cache *driver.DiskCache
	if !noCache {
		var err error
		cache, err = driver.OpenDiskCache("minic")
		if err != nil {
			// компиляция важнее кэша
			fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", err)
		}
	}

	_, results, err := driver.CompileDir(context.Background(), dir, opts, jobs, cache)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no .mc files under %s", dir)
	}

	failed := 0
	for _, r := range results {
		if err := reportResult(cmd, r.Path, r.Result, opts, format, ""); err != nil {
			return err
		}
		if !r.Result.Valid() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to compile", failed, len(results))
	}
	return nil
}

func reportResult(cmd *cobra.Command, path string, result *driver.Result, opts driver.Options, format, output string) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	bag := result.AllDiagnostics()
	if bag.Len() > 0 && format == "pretty" {
		diagfmt.Pretty(os.Stderr, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Width:     diagfmt.TermWidth(os.Stderr),
			ShowNotes: true,
		})
	}
	if len(result.Fixes) > 0 && format == "pretty" && !quiet {
		diagfmt.FixesPretty(os.Stderr, result.Fixes, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("%s: failed to create %s: %w", diag.IOWriteFailed.ID(), output, err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	switch format {
	case "pretty":
		if opts.EmitAsm && result.Asm != "" {
			fmt.Fprint(out, result.Asm)
		} else if result.Valid() {
			if !quiet {
				fmt.Fprintf(out, "%s: symbols\n", path)
			}
			diagfmt.SymbolsPretty(out, result.Table)
			if !quiet {
				fmt.Fprintf(out, "%s: quadruples\n", path)
			}
			diagfmt.QuadsPretty(out, result.Quads)
		}
	case "json":
		if err := diagfmt.JSON(out, bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
		if err := diagfmt.FixesJSON(out, result.Fixes, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
		}); err != nil {
			return err
		}
		if result.Valid() {
			if err := diagfmt.SemanticsJSON(out, result.Table, result.Quads); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if opts.Timings && !quiet {
		fmt.Fprint(os.Stderr, timingSummary(result))
	}
	return nil
}
