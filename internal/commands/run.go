package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reconcile-dev/reconcile/internal/config"
	"github.com/reconcile-dev/reconcile/internal/ledger"
	"github.com/reconcile-dev/reconcile/internal/logger"
	"github.com/reconcile-dev/reconcile/internal/recon"
	"github.com/reconcile-dev/reconcile/internal/report"
	"github.com/reconcile-dev/reconcile/internal/statement"
)

type runOptions struct {
	bankPath   string
	ledgerPath string
	configPath string
	format     string
	outDir     string
	noFuzzy    bool
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile a bank statement against the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd.OutOrStdout(), logger.New(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.bankPath, "bank", "", "bank statement CSV (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&opts.ledgerPath, "ledger", "ledger.csv", "ledger CSV")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "reconcile.yaml path (defaults apply if unset)")
	cmd.Flags().StringVar(&opts.format, "format", "generic", "statement format")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory for CSV exports and the run log")
	cmd.Flags().BoolVar(&opts.noFuzzy, "no-fuzzy", false, "exact matches only")

	return cmd
}

func runReconcile(w io.Writer, log zerolog.Logger, opts runOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	reconCfg := cfg.ReconConfig()
	if opts.noFuzzy {
		reconCfg.EnableFuzzyMatching = false
	}

	parser := statement.DefaultRegistry().Get(opts.format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", opts.format)
	}

	f, err := os.Open(opts.bankPath)
	if err != nil {
		return fmt.Errorf("opening statement %s: %w", opts.bankPath, err)
	}
	bank, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing statement %s: %w", opts.bankPath, err)
	}
	log.Info().Str("file", opts.bankPath).Int("records", len(bank)).Msg("parsed bank statement")

	records, err := ledger.NewService().Read(opts.ledgerPath)
	if err != nil {
		return err
	}
	log.Info().Str("file", opts.ledgerPath).Int("records", len(records)).Msg("read ledger")

	res, err := recon.MatchTransactions(bank, records, reconCfg)
	if err != nil {
		return err
	}
	discs := recon.IdentifyDiscrepancies(res)
	log.Info().
		Int("matched", res.MatchedCount).
		Int("unmatched_bank", len(res.UnmatchedBank)).
		Int("unmatched_ledger", len(res.UnmatchedLedger)).
		Int("discrepancies", len(discs)).
		Float64("match_rate", res.MatchRate).
		Msg("reconciliation complete")

	if err := report.RenderSummary(w, res, discs); err != nil {
		return err
	}

	if opts.outDir == "" {
		return nil
	}
	return writeExports(log, opts, res, discs)
}

func writeExports(log zerolog.Logger, opts runOptions, res recon.Result, discs []recon.Discrepancy) error {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("creating out dir: %w", err)
	}

	matchesPath := filepath.Join(opts.outDir, "matches.csv")
	if err := writeCSVFile(matchesPath, func(w io.Writer) error {
		return report.WriteMatchesCSV(w, res.Matches)
	}); err != nil {
		return err
	}

	discsPath := filepath.Join(opts.outDir, "discrepancies.csv")
	if err := writeCSVFile(discsPath, func(w io.Writer) error {
		return report.WriteDiscrepanciesCSV(w, discs)
	}); err != nil {
		return err
	}

	runID := uuid.NewString()
	entry := report.Entry{
		Timestamp:        time.Now().UTC(),
		RunID:            runID,
		StatementFile:    filepath.Base(opts.bankPath),
		LedgerFile:       filepath.Base(opts.ledgerPath),
		MatchedCount:     res.MatchedCount,
		UnmatchedBank:    len(res.UnmatchedBank),
		UnmatchedLedger:  len(res.UnmatchedLedger),
		DiscrepancyCount: len(discs),
		MatchRate:        res.MatchRate,
	}
	if err := report.Append(opts.outDir, []report.Entry{entry}); err != nil {
		return err
	}

	log.Info().Str("run_id", runID).Str("dir", opts.outDir).Msg("wrote exports")
	return nil
}

func writeCSVFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
