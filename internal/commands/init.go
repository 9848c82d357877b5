package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reconcile-dev/reconcile/internal/config"
	"github.com/reconcile-dev/reconcile/internal/ledger"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new reconciliation workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir)
		},
	}

	return cmd
}

func runInit(cmd *cobra.Command, dir string) error {
	// Create directory structure.
	dirs := []string{
		"statements",
		"reports",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write reconcile.yaml.
	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, "reconcile.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty ledger.csv (header only).
	f, err := os.Create(filepath.Join(dir, "ledger.csv"))
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	defer f.Close()
	if err := ledger.WriteRecords(f, nil); err != nil {
		return fmt.Errorf("writing ledger header: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized reconciliation workspace at %s\n", dir)
	return nil
}
