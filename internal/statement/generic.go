package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reconcile-dev/reconcile/internal/model"
)

// GenericParser parses the canonical statement export layout:
// id,date,amount,direction,counterparty,balance. Amounts are unsigned;
// the direction column carries the sign of the movement.
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 6
	genericColID      = 0
	genericColDate    = 1
	genericColAmount  = 2
	genericColDir     = 3
	genericColCparty  = 4
	genericColBalance = 5
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a statement CSV and returns BankRecords.
func (p *GenericParser) Parse(r io.Reader) ([]model.BankRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.BankRecord
	for i, rec := range records[1:] {
		br, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, br)
	}
	return out, nil
}

func parseGenericRow(rec []string) (model.BankRecord, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return model.BankRecord{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := decimal.NewFromString(rec[genericColAmount])
	if err != nil {
		return model.BankRecord{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	var balance decimal.Decimal
	if rec[genericColBalance] != "" {
		balance, err = decimal.NewFromString(rec[genericColBalance])
		if err != nil {
			return model.BankRecord{}, fmt.Errorf("parsing balance %q: %w", rec[genericColBalance], err)
		}
	}

	br := model.BankRecord{
		ID:           rec[genericColID],
		Date:         date,
		Amount:       amount,
		Direction:    model.Direction(strings.ToUpper(rec[genericColDir])),
		Counterparty: rec[genericColCparty],
		Balance:      balance,
	}
	if err := br.Validate(); err != nil {
		return model.BankRecord{}, err
	}
	return br, nil
}
