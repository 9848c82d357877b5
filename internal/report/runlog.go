package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log: a summary of a completed
// reconciliation run.
type Entry struct {
	Timestamp        time.Time
	RunID            string
	StatementFile    string
	LedgerFile       string
	MatchedCount     int
	UnmatchedBank    int
	UnmatchedLedger  int
	DiscrepancyCount int
	MatchRate        float64
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,statement_file,ledger_file,matched,unmatched_bank,unmatched_ledger,discrepancies,match_rate"

const (
	numFields          = 9
	logDir             = "logs"
	logFile            = "logs/run-log.csv"
	colTimestamp       = 0
	colRunID           = 1
	colStatementFile   = 2
	colLedgerFile      = 3
	colMatched         = 4
	colUnmatchedBank   = 5
	colUnmatchedLedger = 6
	colDiscrepancies   = 7
	colMatchRate       = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colStatementFile] = e.StatementFile
	row[colLedgerFile] = e.LedgerFile
	row[colMatched] = strconv.Itoa(e.MatchedCount)
	row[colUnmatchedBank] = strconv.Itoa(e.UnmatchedBank)
	row[colUnmatchedLedger] = strconv.Itoa(e.UnmatchedLedger)
	row[colDiscrepancies] = strconv.Itoa(e.DiscrepancyCount)
	row[colMatchRate] = strconv.FormatFloat(e.MatchRate, 'f', 4, 64)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	ints := make([]int, 4)
	for i, col := range []int{colMatched, colUnmatchedBank, colUnmatchedLedger, colDiscrepancies} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		ints[i] = n
	}

	rate, err := strconv.ParseFloat(record[colMatchRate], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing match_rate %q: %w", record[colMatchRate], err)
	}

	return Entry{
		Timestamp:        ts,
		RunID:            record[colRunID],
		StatementFile:    record[colStatementFile],
		LedgerFile:       record[colLedgerFile],
		MatchedCount:     ints[0],
		UnmatchedBank:    ints[1],
		UnmatchedLedger:  ints[2],
		DiscrepancyCount: ints[3],
		MatchRate:        rate,
	}, nil
}

// Append writes entries to <root>/logs/run-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/run-log.csv. Returns an
// empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
