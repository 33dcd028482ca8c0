package table

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenDayAccount returns a 10 row export, newest first, as banks usually export.
func tenDayAccount(t *testing.T) *models.Table {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,deposit,withdrawal\n")
	for day := 10; day >= 1; day-- {
		fmt.Fprintf(&b, "2023-01-%02d,%d,%d\n", day+5, day*100, day*10)
	}
	tbl, err := ReadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	return tbl
}

func indexRaw(tbl *models.Table) []string {
	return tbl.Index.Raw
}

func TestSetIndex(t *testing.T) {
	tbl := tenDayAccount(t)
	require.NoError(t, SetIndex(tbl, "date", true))

	assert.Equal(t, "date", tbl.Index.Name)
	assert.Equal(t, models.KindTimestamp, tbl.Index.Kind)
	assert.Equal(t, []string{"deposit", "withdrawal"}, tbl.ColumnNames())
	assert.Equal(t, 10, tbl.Len())
}

func TestSetIndexWithoutTimestampParsing(t *testing.T) {
	tbl := tenDayAccount(t)
	require.NoError(t, SetIndex(tbl, "date", false))
	assert.Equal(t, models.KindText, tbl.Index.Kind)
	assert.Nil(t, tbl.Index.Times)
}

func TestSetIndexUnknownColumn(t *testing.T) {
	tbl := tenDayAccount(t)
	err := SetIndex(tbl, "booking_date", false)
	assert.True(t, errors.Is(err, models.ErrColumnNotFound))
}

func TestSetIndexUnparsableTimestamp(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("date,amount\n2023-01-01,1\nyesterday,2\n"))
	require.NoError(t, err)
	assert.Error(t, SetIndex(tbl, "date", true))
}

func TestShortenTimestampSingleValue(t *testing.T) {
	tbl := tenDayAccount(t)
	require.NoError(t, SetIndex(tbl, "date", true))

	// The last row holds 2023-01-06; the single value is the end of the range.
	short, err := Shorten(tbl, []string{"2023-01-10"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-10", "2023-01-09", "2023-01-08", "2023-01-07", "2023-01-06"}, indexRaw(short))

	deposit, ok := short.Column("deposit")
	require.True(t, ok)
	assert.Equal(t, []float64{500, 400, 300, 200, 100}, deposit.Numbers)
}

func TestShortenTimestampTwoValues(t *testing.T) {
	tbl := tenDayAccount(t)
	require.NoError(t, SetIndex(tbl, "date", true))

	// end first, start second
	short, err := Shorten(tbl, []string{"2023-01-12", "2023-01-08"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-12", "2023-01-11", "2023-01-10", "2023-01-09", "2023-01-08"}, indexRaw(short))
}

func TestShortenNumericIndex(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("n,amount\n1,10\n2,20\n3,30\n4,40\n5,50\n"))
	require.NoError(t, err)
	require.NoError(t, SetIndex(tbl, "n", false))

	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"No tokens", nil, []string{"1", "2", "3", "4", "5"}},
		{"Start only", []string{"3"}, []string{"3", "4", "5"}},
		{"Start and end", []string{"2", "4"}, []string{"2", "3", "4"}},
		{"Empty range", []string{"4", "2"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			short, err := Shorten(tbl, tt.tokens, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, indexRaw(short))
		})
	}
}

func TestShortenTextIndex(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("code,amount\na,1\nb,2\nc,3\nd,4\n"))
	require.NoError(t, err)
	require.NoError(t, SetIndex(tbl, "code", false))

	short, err := Shorten(tbl, []string{"b"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, indexRaw(short))
}

func TestShortenMissingLastIndexValue(t *testing.T) {
	tests := []struct {
		name  string
		csv   string
		token string
		isDT  bool
	}{
		{"Numeric", "n,amount\n1,10\n2,20\n,30\n", "1", false},
		{"Text", "code,amount\na,1\nb,2\n,3\n", "a", false},
		{"Timestamp", "date,amount\n2023-01-03,1\n2023-01-02,2\n,3\n", "2023-01-03", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ReadCSV(strings.NewReader(tt.csv))
			require.NoError(t, err)
			require.NoError(t, SetIndex(tbl, tbl.Columns[0].Name, tt.isDT))

			short, err := Shorten(tbl, []string{tt.token}, tt.isDT)
			require.NoError(t, err)
			assert.Equal(t, 0, short.Len())
		})
	}
}

func TestShortenErrors(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("n,amount\n1,10\n2,20\n"))
	require.NoError(t, err)
	require.NoError(t, SetIndex(tbl, "n", false))

	var cfgErr *models.ConfigurationError

	_, err = Shorten(tbl, []string{"1", "2", "3"}, false)
	assert.True(t, errors.As(err, &cfgErr))

	_, err = Shorten(tbl, []string{"first"}, false)
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRename(t *testing.T) {
	tbl := tenDayAccount(t)
	require.NoError(t, SetIndex(tbl, "date", true))

	require.NoError(t, Rename(tbl, []string{"deposit", "in", "withdrawal", "out", "missing", "x"}))
	assert.Equal(t, []string{"in", "out"}, tbl.ColumnNames())
	assert.Equal(t, "date", tbl.Index.Name)
}

func TestRenameSwap(t *testing.T) {
	tbl := tenDayAccount(t)
	require.NoError(t, Rename(tbl, []string{"deposit", "withdrawal", "withdrawal", "deposit"}))
	assert.Equal(t, []string{"date", "withdrawal", "deposit"}, tbl.ColumnNames())
}

func TestRenameOddCount(t *testing.T) {
	tbl := tenDayAccount(t)
	err := Rename(tbl, []string{"old1"})

	var cfgErr *models.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"date", "deposit", "withdrawal"}, tbl.ColumnNames())
}
