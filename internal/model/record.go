package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a bank statement row: money in or money out.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Kind classifies a ledger entry as recorded by the bookkeeper.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// RecordStatus is the lifecycle state of a ledger record.
type RecordStatus string

const (
	StatusPending   RecordStatus = "pending"
	StatusCompleted RecordStatus = "completed"
)

// Compatible reports whether a bank direction and a ledger kind describe
// the same flow of money. CREDIT pairs only with INCOME, DEBIT only with
// EXPENSE; matching never crosses these.
func Compatible(d Direction, k Kind) bool {
	switch d {
	case DirectionCredit:
		return k == KindIncome
	case DirectionDebit:
		return k == KindExpense
	}
	return false
}

// BankRecord is one row of a bank statement, immutable once issued.
// Amount is always non-negative; the sign of the movement is carried by
// Direction, never by the amount.
type BankRecord struct {
	ID           string
	Date         time.Time // calendar date, no time component
	Amount       decimal.Decimal
	Direction    Direction
	Counterparty string
	Balance      decimal.Decimal // running balance, informational only
}

// LedgerRecord is one entry in the internal ledger, mutable until
// reconciled.
type LedgerRecord struct {
	ID             string
	Date           time.Time
	Kind           Kind
	Amount         decimal.Decimal
	CounterpartyID string
	Description    string
	Status         RecordStatus
}

// ValidationError describes a record that cannot enter reconciliation.
type ValidationError struct {
	RecordID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("record %s: %s", e.RecordID, e.Description)
}

// Validate rejects bank records that must not enter matching.
func (r BankRecord) Validate() error {
	if r.Amount.IsNegative() {
		return ValidationError{RecordID: r.ID, Description: fmt.Sprintf("negative amount %s", r.Amount)}
	}
	switch r.Direction {
	case DirectionCredit, DirectionDebit:
	default:
		return ValidationError{RecordID: r.ID, Description: fmt.Sprintf("unknown direction %q", r.Direction)}
	}
	return nil
}

// Validate rejects ledger records that must not enter matching.
func (r LedgerRecord) Validate() error {
	if r.Amount.IsNegative() {
		return ValidationError{RecordID: r.ID, Description: fmt.Sprintf("negative amount %s", r.Amount)}
	}
	switch r.Kind {
	case KindIncome, KindExpense:
	default:
		return ValidationError{RecordID: r.ID, Description: fmt.Sprintf("unknown kind %q", r.Kind)}
	}
	return nil
}

// SameDay reports whether two dates fall on the same calendar day,
// ignoring any time-of-day or location component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the absolute difference between two calendar dates
// in whole days.
func DaysBetween(a, b time.Time) int {
	au := midnight(a)
	bu := midnight(b)
	d := au.Sub(bu) / (24 * time.Hour)
	if d < 0 {
		d = -d
	}
	return int(d)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
