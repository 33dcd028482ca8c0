package models

import (
	"math"
	"time"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindTimestamp
)

func (k Kind) String() string {
	return [...]string{"text", "numeric", "timestamp"}[k]
}

// SourceFormat tells which reader produced a table.
type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatXLSX SourceFormat = "xlsx"
)

// Column holds one named column. Raw always has one entry per row;
// Numbers is set for numeric columns (NaN marks a missing cell) and
// Times for timestamp columns (zero time marks a missing cell).
type Column struct {
	Name    string
	Kind    Kind
	Raw     []string
	Numbers []float64
	Times   []time.Time
}

func (c *Column) Len() int {
	return len(c.Raw)
}

// IsNumeric reports whether the column holds integer or floating point values.
func (c *Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// Values returns the non-missing numbers in row order.
func (c *Column) Values() []float64 {
	values := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// Rows returns a copy of the column restricted to the given row positions.
func (c *Column) Rows(rows []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, Raw: make([]string, len(rows))}
	if c.Numbers != nil {
		out.Numbers = make([]float64, len(rows))
	}
	if c.Times != nil {
		out.Times = make([]time.Time, len(rows))
	}
	for i, r := range rows {
		out.Raw[i] = c.Raw[r]
		if c.Numbers != nil {
			out.Numbers[i] = c.Numbers[r]
		}
		if c.Times != nil {
			out.Times[i] = c.Times[r]
		}
	}
	return out
}

// Table is an ordered set of columns addressed by an index column.
// Index is nil until the loader assigns one.
type Table struct {
	Source  SourceFormat
	Index   *Column
	Columns []*Column
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t.Index != nil {
		return t.Index.Len()
	}
	if len(t.Columns) > 0 {
		return t.Columns[0].Len()
	}
	return 0
}

// Column looks a data column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns the data column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Rows returns a new table holding only the given row positions.
func (t *Table) Rows(rows []int) *Table {
	out := &Table{Source: t.Source, Columns: make([]*Column, len(t.Columns))}
	if t.Index != nil {
		out.Index = t.Index.Rows(rows)
	}
	for i, c := range t.Columns {
		out.Columns[i] = c.Rows(rows)
	}
	return out
}

// Statistic is one of the aggregate reductions the analyzer knows.
type Statistic int

const (
	StatMean Statistic = iota
	StatMedian
	StatMin
	StatMax
)

// DefaultStatistics is the statistic list used when none is requested.
var DefaultStatistics = []string{"mean", "med", "min", "max"}

// String returns the command line identifier of the statistic.
func (s Statistic) String() string {
	switch s {
	case StatMean:
		return "mean"
	case StatMedian:
		return "med"
	case StatMin:
		return "min"
	case StatMax:
		return "max"
	}
	return "unknown"
}

// ParseStatistic maps a command line identifier to a Statistic.
func ParseStatistic(id string) (Statistic, error) {
	switch id {
	case "mean":
		return StatMean, nil
	case "med":
		return StatMedian, nil
	case "min":
		return StatMin, nil
	case "max":
		return StatMax, nil
	}
	return 0, &UnknownStatisticError{Name: id}
}

// StatsResult maps every requested statistic to a value per selected column.
type StatsResult struct {
	Stats   []Statistic
	Columns []string
	Values  map[Statistic]map[string]float64
}

// Get returns the value of one statistic for one column.
func (r *StatsResult) Get(stat Statistic, column string) (float64, bool) {
	byColumn, ok := r.Values[stat]
	if !ok {
		return 0, false
	}
	v, ok := byColumn[column]
	return v, ok
}

// Summary is a describe-style table: one row per measure, one value per column.
type Summary struct {
	Columns  []string
	Measures []string
	Values   map[string][]float64 // measure -> value per column
}
