package table

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/xuri/excelize/v2"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	// XLSXIndexDateLayout is how a timestamp index is written to spreadsheets.
	XLSXIndexDateLayout = "01/02/2006"
	sheetName           = "Sheet1"
)

// WriteCSV writes the table with the index as the first column.
func WriteCSV(w io.Writer, t *models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader(t)); err != nil {
		return err
	}

	layout := timeLayout(t.Index)
	for i := 0; i < t.Len(); i++ {
		record := make([]string, 0, len(t.Columns)+1)
		if t.Index != nil {
			record = append(record, formatCell(t.Index, i, layout))
		}
		for _, c := range t.Columns {
			record = append(record, formatCell(c, i, timeLayout(c)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table to the first sheet of a new workbook. Numbers
// are stored as numeric cells, a timestamp index as XLSXIndexDateLayout text.
func WriteXLSX(w io.Writer, t *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := tableHeader(t)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := setRow(f, 1, headerRow); err != nil {
		return err
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]interface{}, 0, len(t.Columns)+1)
		if t.Index != nil {
			row = append(row, cellValue(t.Index, i, XLSXIndexDateLayout))
		}
		for _, c := range t.Columns {
			row = append(row, cellValue(c, i, timeLayout(c)))
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteSummaryCSV writes a describe table: measures as rows, columns as columns.
func WriteSummaryCSV(w io.Writer, s *models.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, s.Columns...)); err != nil {
		return err
	}
	for _, measure := range s.Measures {
		record := []string{measure}
		for _, v := range s.Values[measure] {
			record = append(record, formatFloat(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryXLSX writes the describe table to a new workbook.
func WriteSummaryXLSX(w io.Writer, s *models.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{""}
	for _, c := range s.Columns {
		header = append(header, c)
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, measure := range s.Measures {
		row := []interface{}{measure}
		for _, v := range s.Values[measure] {
			row = append(row, numberOrNil(v))
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}

func tableHeader(t *models.Table) []string {
	header := make([]string, 0, len(t.Columns)+1)
	if t.Index != nil {
		header = append(header, t.Index.Name)
	}
	return append(header, t.ColumnNames()...)
}

// timeLayout picks the date-only layout when every timestamp is at midnight.
func timeLayout(c *models.Column) string {
	if c == nil || c.Kind != models.KindTimestamp {
		return ""
	}
	for _, ts := range c.Times {
		if !ts.IsZero() && ts != ts.Truncate(24*time.Hour) {
			return dateTimeLayout
		}
	}
	return dateLayout
}

func formatCell(c *models.Column, row int, layout string) string {
	switch c.Kind {
	case models.KindNumeric:
		return formatFloat(c.Numbers[row])
	case models.KindTimestamp:
		if c.Times[row].IsZero() {
			return ""
		}
		return c.Times[row].Format(layout)
	}
	return c.Raw[row]
}

func cellValue(c *models.Column, row int, layout string) interface{} {
	if c.Kind == models.KindNumeric {
		return numberOrNil(c.Numbers[row])
	}
	return formatCell(c, row, layout)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numberOrNil(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
