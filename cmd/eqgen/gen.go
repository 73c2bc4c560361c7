package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eqgen/internal/driver"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [patterns...]",
	Short: "Generate equality methods and enum tables",
	Long: `Scan the packages matching the given patterns (./... by default) for
eq: markers and write one generated file per package containing the
Equal, EqualObject and Hash methods plus enum lookup tables.`,
	RunE: runGen,
}

func init() {
	addGenerateFlags(genCmd)
	genCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
}

func runGen(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	progress, err := parseProgressSetting(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}

	// The TUI owns stdout while generation runs; formats other than
	// pretty are meant for pipes, so they force it off.
	var res *driver.Result
	if format == "pretty" && !quiet && progress.wantProgress() {
		res, err = runGenerateWithUI(cmd.Context(), "eqgen", opts)
	} else {
		res, err = driver.Generate(cmd.Context(), opts)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := reportDiagnostics(cmd, res, format, false); err != nil {
		return err
	}
	if !quiet && format == "pretty" {
		printRunSummary(os.Stdout, res, opts.DryRun)
	}
	if showTimings {
		printTimings(os.Stdout, res)
	}

	if res.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // diagnostics already printed
	}
	return nil
}
