package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible(DirectionCredit, KindIncome))
	assert.True(t, Compatible(DirectionDebit, KindExpense))
	assert.False(t, Compatible(DirectionCredit, KindExpense))
	assert.False(t, Compatible(DirectionDebit, KindIncome))
	assert.False(t, Compatible(Direction("TRANSFER"), KindIncome))
}

func TestBankRecordValidate(t *testing.T) {
	rec := BankRecord{
		ID:        "b1",
		Date:      date(2024, 1, 15),
		Amount:    dec("100.00"),
		Direction: DirectionCredit,
	}
	assert.NoError(t, rec.Validate())

	rec.Amount = dec("-1.00")
	err := rec.Validate()
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "b1", verr.RecordID)

	rec.Amount = dec("1.00")
	rec.Direction = "SIDEWAYS"
	assert.Error(t, rec.Validate())
}

func TestLedgerRecordValidate(t *testing.T) {
	rec := LedgerRecord{
		ID:     "t1",
		Date:   date(2024, 1, 15),
		Kind:   KindExpense,
		Amount: dec("42.50"),
		Status: StatusCompleted,
	}
	assert.NoError(t, rec.Validate())

	rec.Amount = dec("-0.01")
	assert.Error(t, rec.Validate())

	rec.Amount = dec("0.01")
	rec.Kind = ""
	assert.Error(t, rec.Validate())
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(date(2024, 1, 15), date(2024, 1, 15)))
	assert.False(t, SameDay(date(2024, 1, 15), date(2024, 1, 16)))

	// Time-of-day must not matter.
	noon := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(noon, date(2024, 1, 15)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2024, 1, 15), date(2024, 1, 15)))
	assert.Equal(t, 3, DaysBetween(date(2024, 1, 15), date(2024, 1, 18)))
	assert.Equal(t, 3, DaysBetween(date(2024, 1, 18), date(2024, 1, 15)))
	assert.Equal(t, 31, DaysBetween(date(2024, 1, 1), date(2024, 2, 1)))
}
