package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eqgen/internal/driver"
	"eqgen/internal/project"
)

// resolveOptions merges manifest defaults with command-line flags.
// Flags win when set explicitly; unset values fall back to the
// manifest and then to the driver defaults.
func resolveOptions(cmd *cobra.Command, args []string) (driver.Options, error) {
	var opts driver.Options

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return opts, fmt.Errorf("failed to get dir flag: %w", err)
	}
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return opts, fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}
	opts.Dir = dir

	manifest, _, err := project.LoadFromDir(dir)
	if err != nil {
		return opts, fmt.Errorf("failed to load manifest: %w", err)
	}
	gen := manifest.Generate

	opts.Patterns = args
	if len(opts.Patterns) == 0 {
		opts.Patterns = gen.Patterns
	}

	opts.Jobs = gen.Jobs
	if cmd.Flags().Changed("jobs") {
		opts.Jobs, err = cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	opts.MaxDiagnostics = gen.MaxDiagnostics
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	opts.OutputSuffix = gen.OutputSuffix
	if cmd.Flags().Changed("output-suffix") {
		opts.OutputSuffix, err = cmd.Flags().GetString("output-suffix")
		if err != nil {
			return opts, fmt.Errorf("failed to get output-suffix flag: %w", err)
		}
	}

	opts.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return opts, fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	cacheEnabled := gen.Cache
	if cmd.Flags().Changed("cache") {
		cacheEnabled, err = cmd.Flags().GetBool("cache")
		if err != nil {
			return opts, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if cacheEnabled {
		cacheDir := gen.CacheDir
		if cmd.Flags().Changed("cache-dir") {
			cacheDir, err = cmd.Flags().GetString("cache-dir")
			if err != nil {
				return opts, fmt.Errorf("failed to get cache-dir flag: %w", err)
			}
		}
		var cache *driver.DiskCache
		if cacheDir != "" {
			cache, err = driver.OpenDiskCacheAt(cacheDir)
		} else {
			cache, err = driver.OpenDiskCache("eqgen")
		}
		if err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	return opts, nil
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "directory patterns resolve against (default: cwd)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for package processing (0=auto)")
	cmd.Flags().String("output-suffix", "", "suffix for generated files (default: _eq.go)")
	cmd.Flags().Bool("dry-run", false, "validate and synthesize without writing files")
	cmd.Flags().Bool("cache", false, "enable persistent disk cache for clean declarations")
	cmd.Flags().String("cache-dir", "", "override the disk cache directory")
	cmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|sarif|short)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}
