package table

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/pivolan/account_analyzer/domain/models"
)

// SetIndex moves the named column out of the data columns and makes it the
// row index. With asTime every present index cell must parse as a timestamp;
// without it a date-looking column is compared as plain text.
func SetIndex(t *models.Table, name string, asTime bool) error {
	pos := -1
	for i, c := range t.Columns {
		if c.Name == name {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("index column %q: %w", name, models.ErrColumnNotFound)
	}

	index := t.Columns[pos]
	t.Columns = append(t.Columns[:pos:pos], t.Columns[pos+1:]...)

	switch {
	case asTime:
		times := make([]time.Time, index.Len())
		for i, value := range index.Raw {
			if isMissing(value) {
				continue
			}
			ts, err := ParseTimestamp(value, t.Source)
			if err != nil {
				return fmt.Errorf("index column %q, row %d: %w", name, i+1, err)
			}
			times[i] = ts
		}
		index = &models.Column{Name: index.Name, Kind: models.KindTimestamp, Raw: index.Raw, Times: times}
	case index.Kind == models.KindTimestamp:
		index = &models.Column{Name: index.Name, Kind: models.KindText, Raw: index.Raw}
	}
	t.Index = index
	return nil
}

// Shorten keeps the rows whose index lies in [start, end], in their original
// order. The bounds are read literally from the tokens:
//
//	timestamp index: end = tokens[0], start = tokens[1] or the last index value
//	other index:     start = tokens[0], end = tokens[1] or the last index value
//
// Rows with a missing index value never match, and a missing last index
// value as the open bound matches nothing.
func Shorten(t *models.Table, tokens []string, isIndexDT bool) (*models.Table, error) {
	if len(tokens) == 0 {
		return t, nil
	}
	if len(tokens) > 2 {
		return nil, models.NewConfigurationError("--shorten takes at most two values, got %d", len(tokens))
	}
	if t.Index == nil {
		return nil, fmt.Errorf("cannot shorten a table without an index")
	}
	if t.Len() == 0 {
		return t, nil
	}
	if len(tokens) == 1 {
		log.Printf("warning: --shorten with a single value keeps the range between %q and the last index value", tokens[0])
	}

	b := newBounds(t.Index)
	if err := b.set(tokens, isIndexDT); err != nil {
		return nil, err
	}

	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if b.contains(i) {
			rows = append(rows, i)
		}
	}
	return t.Rows(rows), nil
}

// bounds compares index cells against a parsed [start, end] range.
type bounds struct {
	index *models.Column
	// cmp compares row i against bound b: -1, 0, 1; ok is false for a missing cell.
	cmp        func(i int, b interface{}) (c int, ok bool)
	parse      func(token string) (interface{}, error)
	last       func() interface{}
	start, end interface{}
}

func newBounds(index *models.Column) *bounds {
	b := &bounds{index: index}
	lastRow := index.Len() - 1

	switch index.Kind {
	case models.KindTimestamp:
		b.parse = func(token string) (interface{}, error) {
			return ParseTimestamp(token, models.FormatCSV)
		}
		b.last = func() interface{} { return index.Times[lastRow] }
		b.cmp = func(i int, bound interface{}) (int, bool) {
			v, w := index.Times[i], bound.(time.Time)
			if v.IsZero() || w.IsZero() {
				return 0, false
			}
			return v.Compare(w), true
		}
	case models.KindNumeric:
		b.parse = func(token string) (interface{}, error) {
			v, ok := parseNumber(token)
			if !ok {
				return nil, fmt.Errorf("%q is not a number", token)
			}
			return v, nil
		}
		b.last = func() interface{} { return index.Numbers[lastRow] }
		b.cmp = func(i int, bound interface{}) (int, bool) {
			v, w := index.Numbers[i], bound.(float64)
			if math.IsNaN(v) || math.IsNaN(w) {
				return 0, false
			}
			switch {
			case v < w:
				return -1, true
			case v > w:
				return 1, true
			}
			return 0, true
		}
	default:
		b.parse = func(token string) (interface{}, error) { return token, nil }
		b.last = func() interface{} { return index.Raw[lastRow] }
		b.cmp = func(i int, bound interface{}) (int, bool) {
			if isMissing(index.Raw[i]) || isMissing(bound.(string)) {
				return 0, false
			}
			return strings.Compare(index.Raw[i], bound.(string)), true
		}
	}
	return b
}

func (b *bounds) set(tokens []string, isIndexDT bool) error {
	parsed := make([]interface{}, len(tokens))
	for i, token := range tokens {
		v, err := b.parse(token)
		if err != nil {
			return models.NewConfigurationError("--shorten value does not match the %s index %q: %v", b.index.Kind, b.index.Name, err)
		}
		parsed[i] = v
	}

	other := b.last()
	if len(parsed) == 2 {
		other = parsed[1]
	}
	if isIndexDT {
		b.end, b.start = parsed[0], other
	} else {
		b.start, b.end = parsed[0], other
	}
	return nil
}

func (b *bounds) contains(i int) bool {
	lo, ok := b.cmp(i, b.start)
	if !ok || lo < 0 {
		return false
	}
	hi, _ := b.cmp(i, b.end)
	return hi <= 0
}
