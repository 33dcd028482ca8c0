package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/pivolan/go_utils"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order when a cell is parsed as a timestamp.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"2.1.2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/06 15:04",
	"01-02-06",
}

var missingMarkers = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A"}

// isMissing reports whether a cell counts as an absent value.
func isMissing(value string) bool {
	return go_utils.InArray(strings.TrimSpace(value), missingMarkers)
}

// parseNumber parses a finite float; integers are accepted as floats.
func parseNumber(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseTimestamp parses a cell with the known date layouts. For xlsx sources a
// plain number is read as an Excel serial date.
func ParseTimestamp(value string, source models.SourceFormat) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if source == models.FormatXLSX {
		if serial, ok := parseNumber(value); ok && serial > 0 {
			return excelize.ExcelDateToTime(serial, false)
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", value)
}

// inferColumn decides the column kind from its cells: numeric when every
// present cell is a number, timestamp when every present cell is a date,
// text otherwise. A column without present cells is text.
func inferColumn(name string, raw []string) *models.Column {
	col := &models.Column{Name: name, Kind: models.KindText, Raw: raw}

	present, numeric, dates := 0, 0, 0
	for _, value := range raw {
		if isMissing(value) {
			continue
		}
		present++
		if _, ok := parseNumber(value); ok {
			numeric++
			continue
		}
		if _, err := ParseTimestamp(value, models.FormatCSV); err == nil {
			dates++
		}
	}

	switch {
	case present == 0:
		return col
	case numeric == present:
		col.Kind = models.KindNumeric
		col.Numbers = make([]float64, len(raw))
		for i, value := range raw {
			v, ok := parseNumber(value)
			if !ok {
				v = math.NaN()
			}
			col.Numbers[i] = v
		}
	case dates == present:
		col.Kind = models.KindTimestamp
		col.Times = make([]time.Time, len(raw))
		for i, value := range raw {
			if isMissing(value) {
				continue
			}
			col.Times[i], _ = ParseTimestamp(value, models.FormatCSV)
		}
	}
	return col
}
