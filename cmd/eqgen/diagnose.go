package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eqgen/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [patterns...]",
	Short: "Report contract and enum diagnostics without writing files",
	Long: `Run the full classification, validation and synthesis pipeline over
the packages matching the given patterns and report diagnostics,
leaving the source tree untouched.`,
	RunE: runDiagnose,
}

func init() {
	addGenerateFlags(diagCmd)
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}
	opts.DryRun = true

	res, err := driver.Generate(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	if err := reportDiagnostics(cmd, res, format, noWarnings); err != nil {
		return err
	}

	failed := res.HasErrors()
	if warningsAsErrors && !failed {
		for i := range res.Packages {
			if res.Packages[i].Bag.HasWarnings() {
				failed = true
				break
			}
		}
	}
	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // diagnostics already printed
	}
	return nil
}
