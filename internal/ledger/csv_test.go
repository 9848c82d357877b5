package ledger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconcile-dev/reconcile/internal/model"
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

const sampleCSV = `id,date,kind,amount,counterparty_id,description,status
t1,2024-01-15,INCOME,10000.00,cp-7,Invoice 1042,completed
t2,2024-01-20,EXPENSE,45.99,cp-3,Office supplies,pending
`

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "t1", records[0].ID)
	assert.Equal(t, model.KindIncome, records[0].Kind)
	assert.True(t, records[0].Amount.Equal(dec("10000.00")))
	assert.Equal(t, date(2024, 1, 15), records[0].Date)

	assert.Equal(t, model.KindExpense, records[1].Kind)
	assert.Equal(t, model.StatusPending, records[1].Status)
	assert.Equal(t, "cp-3", records[1].CounterpartyID)
}

func TestReadRecords_BadRow(t *testing.T) {
	bad := "id,date,kind,amount,counterparty_id,description,status\nt1,not-a-date,INCOME,10.00,cp,x,completed\n"
	_, err := ReadRecords(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadRecords_RejectsNegativeAmount(t *testing.T) {
	bad := "id,date,kind,amount,counterparty_id,description,status\nt1,2024-01-15,INCOME,-10.00,cp,x,completed\n"
	_, err := ReadRecords(strings.NewReader(bad))
	require.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	in := []model.LedgerRecord{
		{
			ID:             "t9",
			Date:           date(2024, 3, 2),
			Kind:           model.KindExpense,
			Amount:         dec("120.50"),
			CounterpartyID: "cp-1",
			Description:    "Hosting, March",
			Status:         model.StatusCompleted,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, in))

	out, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "t9", out[0].ID)
	assert.True(t, out[0].Amount.Equal(dec("120.50")))
	assert.Equal(t, "Hosting, March", out[0].Description)
}

func TestServiceRead_NonExistent(t *testing.T) {
	svc := NewService()
	records, err := svc.Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestServiceReadRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")
	csv := `id,date,kind,amount,counterparty_id,description,status
t1,2024-01-10,EXPENSE,10.00,cp,a,completed
t2,2024-01-15,EXPENSE,20.00,cp,b,completed
t3,2024-01-31,EXPENSE,30.00,cp,c,completed
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	svc := NewService()
	records, err := svc.ReadRange(path, date(2024, 1, 15), date(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "t2", records[0].ID)
	assert.Equal(t, "t3", records[1].ID)
}
