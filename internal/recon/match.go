package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/reconcile-dev/reconcile/internal/model"
)

// MatchType classifies how a pairing was found.
type MatchType string

const (
	MatchExact       MatchType = "EXACT"
	MatchFuzzyAmount MatchType = "FUZZY_AMOUNT"
	MatchFuzzyDate   MatchType = "FUZZY_DATE"
	MatchFuzzyBoth   MatchType = "FUZZY_BOTH"
)

// Match pairs exactly one bank record with exactly one ledger record.
type Match struct {
	Bank   model.BankRecord
	Ledger model.LedgerRecord
	Type   MatchType

	// Confidence is in [0, 1]; 1.0 for exact matches.
	Confidence float64

	// AmountDeltaRatio is |bank - ledger| / max(bank, ledger), zero for
	// exact matches.
	AmountDeltaRatio decimal.Decimal

	// DateDeltaDays is the absolute day difference, zero for exact matches.
	DateDeltaDays int
}

// Result is the complete outcome of one reconciliation run. Every input
// record appears exactly once: either inside a Match or in the unmatched
// list for its side.
type Result struct {
	Matches         []Match
	UnmatchedBank   []model.BankRecord
	UnmatchedLedger []model.LedgerRecord

	TotalBankRecords   int
	TotalLedgerRecords int
	MatchedCount       int

	// MatchRate is MatchedCount over the larger input side (at least 1,
	// so an empty run reports 0 rather than dividing by zero).
	MatchRate float64
}

// MatchTransactions reconciles a bank statement against ledger records.
// Phase one pairs records that agree exactly on amount and calendar date
// with a compatible direction. Phase two, when enabled, pairs leftovers
// within the configured tolerances, preferring the candidate with the
// smallest combined normalized deviation. Both phases walk records in
// input order and break ties toward the earliest-inserted candidate, so
// identical inputs always produce identical results.
//
// The function is pure: it reads its arguments, shares no state between
// calls, and is safe to invoke from concurrent goroutines on independent
// inputs.
func MatchTransactions(bank []model.BankRecord, ledger []model.LedgerRecord, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	for _, r := range bank {
		if err := r.Validate(); err != nil {
			return Result{}, fmt.Errorf("bank record: %w", err)
		}
	}
	for _, r := range ledger {
		if err := r.Validate(); err != nil {
			return Result{}, fmt.Errorf("ledger record: %w", err)
		}
	}

	matchedBank := make([]bool, len(bank))
	matchedLedger := make([]bool, len(ledger))
	var matches []Match

	// Exact phase: first compatible candidate with identical amount and
	// date wins; both records leave their pools.
	for i, b := range bank {
		for j, l := range ledger {
			if matchedLedger[j] || !model.Compatible(b.Direction, l.Kind) {
				continue
			}
			if !b.Amount.Equal(l.Amount) || !model.SameDay(b.Date, l.Date) {
				continue
			}
			matches = append(matches, Match{
				Bank:       b,
				Ledger:     l,
				Type:       MatchExact,
				Confidence: Confidence(MatchExact, 0, 0, cfg),
			})
			matchedBank[i] = true
			matchedLedger[j] = true
			break
		}
	}

	if cfg.EnableFuzzyMatching {
		for i, b := range bank {
			if matchedBank[i] {
				continue
			}
			best := -1
			var bestDist float64
			var bestRatio decimal.Decimal
			var bestDays int
			for j, l := range ledger {
				if matchedLedger[j] || !model.Compatible(b.Direction, l.Kind) {
					continue
				}
				ratio := amountDeltaRatio(b.Amount, l.Amount)
				if ratio.GreaterThan(cfg.AmountTolerancePercent) {
					continue
				}
				days := model.DaysBetween(b.Date, l.Date)
				if days > cfg.DateToleranceDays {
					continue
				}
				dist := combinedDistance(ratio.InexactFloat64(), days, cfg)
				if best == -1 || dist < bestDist {
					best = j
					bestDist = dist
					bestRatio = ratio
					bestDays = days
				}
			}
			if best == -1 {
				continue
			}
			l := ledger[best]
			mt := classifyFuzzy(!b.Amount.Equal(l.Amount), bestDays != 0)
			matches = append(matches, Match{
				Bank:             b,
				Ledger:           l,
				Type:             mt,
				Confidence:       Confidence(mt, bestRatio.InexactFloat64(), bestDays, cfg),
				AmountDeltaRatio: bestRatio,
				DateDeltaDays:    bestDays,
			})
			matchedBank[i] = true
			matchedLedger[best] = true
		}
	}

	res := Result{
		Matches:            matches,
		TotalBankRecords:   len(bank),
		TotalLedgerRecords: len(ledger),
		MatchedCount:       len(matches),
	}
	for i, b := range bank {
		if !matchedBank[i] {
			res.UnmatchedBank = append(res.UnmatchedBank, b)
		}
	}
	for j, l := range ledger {
		if !matchedLedger[j] {
			res.UnmatchedLedger = append(res.UnmatchedLedger, l)
		}
	}

	denom := res.TotalBankRecords
	if res.TotalLedgerRecords > denom {
		denom = res.TotalLedgerRecords
	}
	if denom < 1 {
		denom = 1
	}
	res.MatchRate = float64(res.MatchedCount) / float64(denom)

	return res, nil
}

// amountDeltaRatio is the relative amount deviation |a-b| / max(a,b),
// computed in decimal so tolerance boundaries compare exactly. Two zero
// amounts have ratio zero.
func amountDeltaRatio(a, b decimal.Decimal) decimal.Decimal {
	larger := decimal.Max(a, b)
	if larger.IsZero() {
		return decimal.Zero
	}
	return a.Sub(b).Abs().Div(larger)
}

// classifyFuzzy labels a fuzzy-phase pairing by which dimensions deviate.
// The exact phase owns zero-deviation pairs, so EXACT is never produced
// here; a pairing with neither dimension deviating falls through to
// FUZZY_BOTH rather than being promoted.
func classifyFuzzy(amountDiffers, dateDiffers bool) MatchType {
	switch {
	case amountDiffers && !dateDiffers:
		return MatchFuzzyAmount
	case !amountDiffers && dateDiffers:
		return MatchFuzzyDate
	default:
		return MatchFuzzyBoth
	}
}
