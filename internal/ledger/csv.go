package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reconcile-dev/reconcile/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "id,date,kind,amount,counterparty_id,description,status"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colKind    = 2
	colAmount  = 3
	colCparty  = 4
	colDesc    = 5
	colStatus  = 6
)

// ReadRecords reads all ledger records from a ledger.csv reader.
func ReadRecords(r io.Reader) ([]model.LedgerRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var out []model.LedgerRecord
	for i, rec := range records[1:] {
		lr, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, lr)
	}
	return out, nil
}

// WriteRecords writes ledger records to a writer (including header).
func WriteRecords(w io.Writer, records []model.LedgerRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a LedgerRecord to a CSV row ([]string).
func MarshalRecord(rec model.LedgerRecord) []string {
	row := make([]string, numFields)
	row[colID] = rec.ID
	row[colDate] = rec.Date.Format(dateFormat)
	row[colKind] = string(rec.Kind)
	row[colAmount] = rec.Amount.StringFixed(2)
	row[colCparty] = rec.CounterpartyID
	row[colDesc] = rec.Description
	row[colStatus] = string(rec.Status)
	return row
}

// UnmarshalRecord converts a CSV row to a LedgerRecord.
func UnmarshalRecord(record []string) (model.LedgerRecord, error) {
	if len(record) != numFields {
		return model.LedgerRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.LedgerRecord{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.LedgerRecord{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	lr := model.LedgerRecord{
		ID:             record[colID],
		Date:           date,
		Kind:           model.Kind(record[colKind]),
		Amount:         amount,
		CounterpartyID: record[colCparty],
		Description:    record[colDesc],
		Status:         model.RecordStatus(record[colStatus]),
	}
	if err := lr.Validate(); err != nil {
		return model.LedgerRecord{}, err
	}
	return lr, nil
}
