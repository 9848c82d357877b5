package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconcile-dev/reconcile/internal/model"
)

func TestGenericParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement_generic.csv")
	require.NoError(t, err)

	p := &GenericParser{}
	records, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, records, 5)

	// First: incoming invoice payment.
	assert.Equal(t, "b1", records[0].ID)
	assert.Equal(t, model.DirectionCredit, records[0].Direction)
	assert.Equal(t, "10000.00", records[0].Amount.StringFixed(2))
	assert.Equal(t, "ABC Consulting", records[0].Counterparty)
	assert.Equal(t, 2024, records[0].Date.Year())
	assert.Equal(t, 1, int(records[0].Date.Month()))
	assert.Equal(t, 15, records[0].Date.Day())

	// Second: outgoing payment, amount stays unsigned.
	assert.Equal(t, model.DirectionDebit, records[1].Direction)
	assert.True(t, records[1].Amount.IsPositive())

	// Balance column is carried through.
	assert.Equal(t, "10455.00", records[1].Balance.StringFixed(2))
}

func TestGenericParser_LowercaseDirection(t *testing.T) {
	csv := "id,date,amount,direction,counterparty,balance\nb1,2024-01-15,5.00,credit,X,5.00\n"
	p := &GenericParser{}
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.DirectionCredit, records[0].Direction)
}

func TestGenericParser_EmptyFile(t *testing.T) {
	p := &GenericParser{}
	records, err := p.Parse(strings.NewReader("id,date,amount,direction,counterparty,balance\n"))
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestGenericParser_BadDate(t *testing.T) {
	csv := "id,date,amount,direction,counterparty,balance\nb1,NOTADATE,5.00,CREDIT,X,\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestGenericParser_BadAmount(t *testing.T) {
	csv := "id,date,amount,direction,counterparty,balance\nb1,2024-01-15,NOTANUMBER,CREDIT,X,\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestGenericParser_BadDirection(t *testing.T) {
	csv := "id,date,amount,direction,counterparty,balance\nb1,2024-01-15,5.00,SIDEWAYS,X,\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestGenericParser_Format(t *testing.T) {
	p := &GenericParser{}
	assert.Equal(t, "generic", p.Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	assert.NotNil(t, r.Get("Generic"))
	assert.NotNil(t, r.Get("GENERIC"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}
