package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/pivolan/go_utils"
	"github.com/xuri/excelize/v2"
)

var (
	tableExtensions   = []string{".csv", ".xlsx", ".xls"}
	archiveExtensions = []string{".gz", ".lz4"}
)

// SupportedSource reports whether the file name looks readable. Zip archives
// are accepted here; the file inside is checked once the archive is opened.
func SupportedSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".zip" {
		return true
	}
	if go_utils.InArray(ext, archiveExtensions) {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	return go_utils.InArray(ext, tableExtensions)
}

// Read loads a CSV or spreadsheet file, unpacking gzip, lz4 and zip wrappers.
func Read(path string) (*models.Table, error) {
	data, name, err := readSource(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(bytes.NewReader(data))
	case ".xlsx", ".xls":
		t, err := ReadXLSX(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("error reading workbook %s: %w", name, err)
		}
		return t, nil
	}
	return nil, &models.UnsupportedFormatError{Path: path}
}

// ReadCSV reads a delimited table with a header row. The delimiter is
// detected from the header line among ',', ';' and tab.
func ReadCSV(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("source has no header row")
	}
	return fromRecords(records[0], records[1:], models.FormatCSV), nil
}

// ReadXLSX reads the first sheet of a workbook; its first row is the header.
func ReadXLSX(r io.Reader) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(rows) && i < len(raw); i++ {
		for j := 0; j < len(rows[i]) && j < len(raw[i]); j++ {
			rows[i][j] = xlsxCell(rows[i][j], raw[i][j])
		}
	}
	return fromRecords(rows[0], rows[1:], models.FormatXLSX), nil
}

// xlsxCell picks between the formatted text of a cell and its stored value.
// Numbers shown with a format ("1,234.50", "12%", rounded) keep the stored
// number; dates keep their formatted text so they still read as timestamps.
func xlsxCell(formatted, raw string) string {
	if _, ok := parseNumber(raw); !ok {
		return formatted
	}
	if _, err := ParseTimestamp(formatted, models.FormatCSV); err == nil {
		return formatted
	}
	return raw
}

func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// fromRecords builds a table column by column; short rows are padded with
// empty cells and cells past the header are dropped.
func fromRecords(header []string, rows [][]string, source models.SourceFormat) *models.Table {
	headers := normalizeHeaders(header)
	t := &models.Table{Source: source, Columns: make([]*models.Column, len(headers))}

	for c, name := range headers {
		raw := make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				raw[r] = row[c]
			}
		}
		t.Columns[c] = inferColumn(name, raw)
	}
	return t
}
