package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/reconcile-dev/reconcile/internal/model"
)

// Service reads ledger records for reconciliation runs.
type Service struct{}

// NewService creates a ledger Service.
func NewService() *Service {
	return &Service{}
}

// Read loads all records from a ledger CSV file. A missing file is an
// empty ledger, not an error.
func (s *Service) Read(path string) ([]model.LedgerRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return records, nil
}

// ReadRange loads records whose date falls within [from, to] inclusive,
// compared by calendar day.
func (s *Service) ReadRange(path string, from, to time.Time) ([]model.LedgerRecord, error) {
	all, err := s.Read(path)
	if err != nil {
		return nil, err
	}

	var out []model.LedgerRecord
	for _, rec := range all {
		if beforeDay(rec.Date, from) || beforeDay(to, rec.Date) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func beforeDay(a, b time.Time) bool {
	if model.SameDay(a, b) {
		return false
	}
	return a.Before(b)
}
