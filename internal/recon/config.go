package recon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config holds the tolerance parameters for one reconciliation run. A
// Config is never mutated mid-run; concurrent runs may share one.
type Config struct {
	// AmountTolerancePercent is the maximum relative amount deviation for
	// a fuzzy match, as a fraction of the larger amount (0.01 = 1%).
	// Zero disables amount fuzziness.
	AmountTolerancePercent decimal.Decimal

	// DateToleranceDays is the maximum absolute day difference for a
	// fuzzy match. Zero disables date fuzziness.
	DateToleranceDays int

	// EnableFuzzyMatching gates the fuzzy phase; when false only exact
	// matches are attempted.
	EnableFuzzyMatching bool
}

// DefaultConfig returns the tolerances used when the caller supplies none:
// 1% amount deviation, 3 days, fuzzy matching on.
func DefaultConfig() Config {
	return Config{
		AmountTolerancePercent: decimal.NewFromFloat(0.01),
		DateToleranceDays:      3,
		EnableFuzzyMatching:    true,
	}
}

// Validate rejects configs with negative tolerances. Invalid tolerances
// fail the run up front rather than being clamped.
func (c Config) Validate() error {
	if c.AmountTolerancePercent.IsNegative() {
		return fmt.Errorf("amount tolerance must not be negative, got %s", c.AmountTolerancePercent)
	}
	if c.DateToleranceDays < 0 {
		return fmt.Errorf("date tolerance must not be negative, got %d", c.DateToleranceDays)
	}
	return nil
}
