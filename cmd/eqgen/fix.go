package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eqgen/internal/diag"
	"eqgen/internal/driver"
	"eqgen/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [patterns...]",
	Short: "Apply available fixes to marked declarations",
	Long:  "Run the validation pipeline, surface available fixes, and apply them according to the chosen strategy.",
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("dir", "", "directory patterns resolve against (default: cwd)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for package processing (0=auto)")
	fixCmd.Flags().Bool("list", false, "list available fixes without applying anything")
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "stage fixes without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	listOnly, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	applyOpts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	}

	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}
	// Never touch generated files while sources are about to change.
	opts.DryRun = true
	opts.Cache = nil

	res, err := driver.Generate(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("fix: diagnose failed: %w", err)
	}

	diagnostics := mergedBag(res, false).Items()

	if listOnly {
		return listFixes(diagnostics)
	}

	applyRes, applyErr := fix.Apply(res.FileSet, diagnostics, applyOpts)
	return handleApplyResult(applyRes, applyErr)
}

func listFixes(diagnostics []diag.Diagnostic) error {
	fixes := fix.List(diagnostics)
	if len(fixes) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes available.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%d fix(es) available:\n", len(fixes))
	for _, f := range fixes {
		id := f.ID
		if id == "" {
			id = "(unnamed)"
		}
		fmt.Fprintf(os.Stdout, "  %s [%s] %s\n", f.Title, id, f.Applicability.String())
	}
	return nil
}

func handleApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
