package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eqgen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter eqgen.toml manifest",
	Long: `Create an eqgen.toml manifest with commented defaults. If [path] is
omitted, the manifest is written to the current directory. Refuses to
overwrite an existing manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 && args[0] != "" {
		target = args[0]
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if info, statErr := os.Stat(abs); statErr == nil {
		if !info.IsDir() {
			return fmt.Errorf("init: %s is not a directory", abs)
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	} else {
		return fmt.Errorf("init: %w", statErr)
	}

	manifestPath := filepath.Join(abs, project.ManifestName)
	if err := project.WriteDefault(manifestPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
	return nil
}
