package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/reconcile-dev/reconcile/internal/model"
)

// DiscrepancyType classifies a residual problem left after matching.
type DiscrepancyType string

const (
	// DiscrepancyAmountDiff marks a matched pair whose amounts differ.
	DiscrepancyAmountDiff DiscrepancyType = "AMOUNT_DIFF"
	// DiscrepancyMissingSystem marks a bank movement with no ledger entry.
	DiscrepancyMissingSystem DiscrepancyType = "MISSING_SYSTEM"
	// DiscrepancyMissingBank marks a ledger entry the bank never confirmed.
	DiscrepancyMissingBank DiscrepancyType = "MISSING_BANK"
)

// Discrepancy is one residual problem for a bookkeeper to resolve. Bank
// and Ledger reference the records involved; either may be nil depending
// on Type.
type Discrepancy struct {
	ID               string
	Type             DiscrepancyType
	Bank             *model.BankRecord
	Ledger           *model.LedgerRecord
	DifferenceAmount decimal.Decimal // absolute
	Description      string
}

// IdentifyDiscrepancies classifies the residual problems in a completed
// reconciliation result. The three rules apply independently, so one run
// can yield discrepancies of every type. IDs are derived from the result
// alone; calling twice on the same result yields identical output.
func IdentifyDiscrepancies(res Result) []Discrepancy {
	var out []Discrepancy

	seq := 0
	for _, m := range res.Matches {
		if m.Type == MatchExact || m.Bank.Amount.Equal(m.Ledger.Amount) {
			continue
		}
		seq++
		bank := m.Bank
		ledger := m.Ledger
		diff := bank.Amount.Sub(ledger.Amount).Abs()
		out = append(out, Discrepancy{
			ID:               formatDiscrepancyID("AMT", seq),
			Type:             DiscrepancyAmountDiff,
			Bank:             &bank,
			Ledger:           &ledger,
			DifferenceAmount: diff,
			Description: fmt.Sprintf("amounts differ by %s: bank %s recorded %s, ledger %s recorded %s",
				diff.StringFixed(2), bank.ID, bank.Amount.StringFixed(2), ledger.ID, ledger.Amount.StringFixed(2)),
		})
	}

	seq = 0
	for _, b := range res.UnmatchedBank {
		seq++
		bank := b
		out = append(out, Discrepancy{
			ID:   formatDiscrepancyID("SYS", seq),
			Type: DiscrepancyMissingSystem,
			Bank: &bank,
			Description: fmt.Sprintf("bank %s of %s on %s (%s) has no ledger entry",
				bank.Direction, bank.Amount.StringFixed(2), bank.Date.Format("2006-01-02"), bank.ID),
		})
	}

	seq = 0
	for _, l := range res.UnmatchedLedger {
		seq++
		ledger := l
		out = append(out, Discrepancy{
			ID:     formatDiscrepancyID("BNK", seq),
			Type:   DiscrepancyMissingBank,
			Ledger: &ledger,
			Description: fmt.Sprintf("ledger %s of %s on %s (%s) not confirmed by the bank statement",
				ledger.Kind, ledger.Amount.StringFixed(2), ledger.Date.Format("2006-01-02"), ledger.ID),
		})
	}

	return out
}

// formatDiscrepancyID returns an ID like "AMT-001".
func formatDiscrepancyID(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
