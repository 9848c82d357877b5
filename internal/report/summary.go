package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reconcile-dev/reconcile/internal/recon"
)

// RenderSummary writes a human-readable account of a reconciliation run.
func RenderSummary(w io.Writer, res recon.Result, discs []recon.Discrepancy) error {
	fmt.Fprintf(w, "Reconciliation: %d bank records vs %d ledger records\n",
		res.TotalBankRecords, res.TotalLedgerRecords)
	fmt.Fprintf(w, "Matched %d pairs (%.1f%% match rate)\n", res.MatchedCount, res.MatchRate*100)

	for _, m := range res.Matches {
		fmt.Fprintf(w, "  %-12s %s <-> %s  %s  confidence %.2f\n",
			m.Type, m.Bank.ID, m.Ledger.ID, m.Bank.Amount.StringFixed(2), m.Confidence)
	}

	if len(res.UnmatchedBank) > 0 {
		fmt.Fprintf(w, "Unmatched bank records: %d\n", len(res.UnmatchedBank))
		for _, b := range res.UnmatchedBank {
			fmt.Fprintf(w, "  %s  %s %s on %s  %s\n",
				b.ID, b.Direction, b.Amount.StringFixed(2), b.Date.Format("2006-01-02"), b.Counterparty)
		}
	}
	if len(res.UnmatchedLedger) > 0 {
		fmt.Fprintf(w, "Unmatched ledger records: %d\n", len(res.UnmatchedLedger))
		for _, l := range res.UnmatchedLedger {
			fmt.Fprintf(w, "  %s  %s %s on %s  %s\n",
				l.ID, l.Kind, l.Amount.StringFixed(2), l.Date.Format("2006-01-02"), l.Description)
		}
	}

	if len(discs) == 0 {
		fmt.Fprintln(w, "No discrepancies.")
		return nil
	}
	fmt.Fprintf(w, "Discrepancies: %d\n", len(discs))
	for _, d := range discs {
		fmt.Fprintf(w, "  %s %-14s %s\n", d.ID, d.Type, d.Description)
	}
	return nil
}

// matchesHeader is the CSV header for the matches export.
const matchesHeader = "bank_id,ledger_id,match_type,confidence,bank_amount,ledger_amount,bank_date,ledger_date"

// WriteMatchesCSV exports matched pairs for spreadsheet review.
func WriteMatchesCSV(w io.Writer, matches []recon.Match) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(matchesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range matches {
		row := []string{
			m.Bank.ID,
			m.Ledger.ID,
			string(m.Type),
			strconv.FormatFloat(m.Confidence, 'f', 4, 64),
			m.Bank.Amount.StringFixed(2),
			m.Ledger.Amount.StringFixed(2),
			m.Bank.Date.Format("2006-01-02"),
			m.Ledger.Date.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// discrepanciesHeader is the CSV header for the discrepancies export.
const discrepanciesHeader = "id,type,bank_id,ledger_id,difference_amount,description"

// WriteDiscrepanciesCSV exports discrepancies for the bookkeeper's queue.
func WriteDiscrepanciesCSV(w io.Writer, discs []recon.Discrepancy) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(discrepanciesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, d := range discs {
		var bankID, ledgerID string
		if d.Bank != nil {
			bankID = d.Bank.ID
		}
		if d.Ledger != nil {
			ledgerID = d.Ledger.ID
		}
		var diff string
		if !d.DifferenceAmount.IsZero() {
			diff = d.DifferenceAmount.StringFixed(2)
		}
		row := []string{d.ID, string(d.Type), bankID, ledgerID, diff, d.Description}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
