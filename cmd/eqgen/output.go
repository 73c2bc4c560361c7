package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eqgen/internal/diag"
	"eqgen/internal/diagfmt"
	"eqgen/internal/driver"
	"eqgen/internal/version"
)

// mergedBag flattens the per-package bags into one sorted bag for
// whole-run output formats.
func mergedBag(res *driver.Result, dropWarnings bool) *diag.Bag {
	total := 0
	for i := range res.Packages {
		total += res.Packages[i].Bag.Len()
	}
	if total == 0 {
		total = 1
	}
	bag := diag.NewBag(total)
	for i := range res.Packages {
		if !dropWarnings {
			bag.Merge(res.Packages[i].Bag)
			continue
		}
		for _, d := range res.Packages[i].Bag.Items() {
			if d.Severity != diag.SevWarning {
				bag.Add(d)
			}
		}
	}
	bag.Sort()
	return bag
}

func reportDiagnostics(cmd *cobra.Command, res *driver.Result, format string, dropWarnings bool) error {
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	bag := mergedBag(res, dropWarnings)

	switch format {
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		}
		diagfmt.Pretty(os.Stdout, bag, res.FileSet, opts)
	case "short":
		diagfmt.Short(os.Stdout, bag, res.FileSet, withNotes)
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}
		if err := diagfmt.JSON(os.Stdout, bag, res.FileSet, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:    "eqgen",
			ToolVersion: version.Plain,
		}
		if err := diagfmt.Sarif(os.Stdout, bag, res.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func printRunSummary(out io.Writer, res *driver.Result, dryRun bool) {
	written, removed, hits := 0, 0, 0
	for i := range res.Packages {
		p := &res.Packages[i]
		if p.Written {
			written++
			fmt.Fprintf(out, "wrote %s\n", p.OutputPath)
		}
		if p.Removed {
			removed++
			fmt.Fprintf(out, "removed %s\n", p.OutputPath)
		}
		hits += p.CacheHits
	}
	if dryRun {
		fmt.Fprintf(out, "dry run: %d package(s) checked\n", len(res.Packages))
		return
	}
	if written == 0 && removed == 0 {
		fmt.Fprintf(out, "%d package(s) up to date\n", len(res.Packages))
	}
	if hits > 0 {
		fmt.Fprintf(out, "cache: %d declaration(s) reused\n", hits)
	}
}

func printTimings(out io.Writer, res *driver.Result) {
	for i := range res.Packages {
		p := &res.Packages[i]
		if len(p.Timing.Phases) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s:\n", p.PkgPath)
		for _, phase := range p.Timing.Phases {
			if phase.Note != "" {
				fmt.Fprintf(out, "  %s %.1f ms (%s)\n", phase.Name, phase.DurationMS, phase.Note)
			} else {
				fmt.Fprintf(out, "  %s %.1f ms\n", phase.Name, phase.DurationMS)
			}
		}
		fmt.Fprintf(out, "  total %.1f ms\n", p.Timing.TotalMS)
	}
}
