package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/pivolan/account_analyzer/table"
	"gorm.io/gorm"
)

const (
	insertBatchSize = 5000
	rowNumColumn    = "row_num"
	nullValue       = `\N`
)

// exportColumn is a table column mapped to a ClickHouse column.
type exportColumn struct {
	name   string
	typ    string
	column *models.Column
}

// exportColumns maps the index and the data columns to ClickHouse names and
// types. Names are transliterated and made unique.
func exportColumns(t *models.Table) []exportColumn {
	source := make([]*models.Column, 0, len(t.Columns)+1)
	if t.Index != nil {
		source = append(source, t.Index)
	}
	source = append(source, t.Columns...)

	names := make([]string, len(source)+1)
	names[0] = rowNumColumn
	for i, c := range source {
		name := replaceSpecialSymbols(c.Name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		names[i+1] = name
	}
	names = table.ValidateHeaders(names)

	columns := make([]exportColumn, len(source))
	for i, c := range source {
		columns[i] = exportColumn{name: names[i+1], typ: clickhouseType(c), column: c}
	}
	return columns
}

// clickhouseType picks the narrowest type holding every value of the column.
func clickhouseType(c *models.Column) string {
	typ := "String"
	missing := false
	switch c.Kind {
	case models.KindNumeric:
		typ = "Int64"
		for _, v := range c.Numbers {
			switch {
			case math.IsNaN(v):
				missing = true
			case v != math.Trunc(v) || math.Abs(v) >= 1<<53:
				typ = "Float64"
			}
		}
	case models.KindTimestamp:
		typ = "Date"
		for _, v := range c.Times {
			switch {
			case v.IsZero():
				missing = true
			case v.Hour() != 0 || v.Minute() != 0 || v.Second() != 0 || v.Nanosecond() != 0:
				typ = "DateTime64"
			}
		}
	default:
		for _, v := range c.Raw {
			if strings.TrimSpace(v) == "" {
				missing = true
			}
		}
	}
	if missing {
		return "Nullable(" + typ + ")"
	}
	return typ
}

// clickhouseTableName is the cleaned source stem plus a short hash of the source path.
func clickhouseTableName(src string) string {
	name := replaceSpecialSymbols(sourceStem(src))
	if name == "" {
		name = "account"
	}
	return name + "_" + getMD5String(src)[:6]
}

func createTableSQL(tableName string, columns []exportColumn) string {
	fields := []string{quoteIdentifier(rowNumColumn) + " UInt64"}
	for _, c := range columns {
		fields = append(fields, fmt.Sprintf("%s %s", quoteIdentifier(c.name), c.typ))
	}
	return "CREATE TABLE " + quoteIdentifier(tableName) + " (" + strings.Join(fields, ",\n") +
		") ENGINE = ReplacingMergeTree PRIMARY KEY (" + quoteIdentifier(rowNumColumn) + ") SETTINGS index_granularity = 8192"
}

// insertBatches renders the rows as CSV chunks of at most size rows each.
func insertBatches(columns []exportColumn, rows, size int) ([]string, error) {
	var batches []string
	b := bytes.NewBufferString("")
	csvWriter := csv.NewWriter(b)
	record := make([]string, len(columns)+1)

	for i := 0; i < rows; i++ {
		record[0] = strconv.Itoa(i)
		for k, c := range columns {
			record[k+1] = exportValue(c, i)
		}
		if err := csvWriter.Write(record); err != nil {
			return nil, err
		}
		if (i+1)%size == 0 {
			csvWriter.Flush()
			batches = append(batches, b.String())
			b.Reset()
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return nil, err
	}
	if b.Len() > 0 {
		batches = append(batches, b.String())
	}
	return batches, nil
}

func exportValue(c exportColumn, row int) string {
	col := c.column
	switch col.Kind {
	case models.KindNumeric:
		v := col.Numbers[row]
		if math.IsNaN(v) {
			return nullValue
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case models.KindTimestamp:
		v := col.Times[row]
		if v.IsZero() {
			return nullValue
		}
		if strings.Contains(c.typ, "DateTime64") {
			return v.Format("2006-01-02 15:04:05.000")
		}
		return v.Format(time.DateOnly)
	}
	if strings.TrimSpace(col.Raw[row]) == "" && strings.HasPrefix(c.typ, "Nullable") {
		return nullValue
	}
	return col.Raw[row]
}

// exportToClickHouse recreates the table for this source and loads every row.
func exportToClickHouse(db *gorm.DB, t *models.Table, src, runID string) (string, error) {
	columns := exportColumns(t)
	tableName := clickhouseTableName(src)

	if tx := db.Exec("DROP TABLE IF EXISTS " + quoteIdentifier(tableName)); tx.Error != nil {
		return "", fmt.Errorf("drop table %s: %w", tableName, tx.Error)
	}
	if tx := db.Exec(createTableSQL(tableName, columns)); tx.Error != nil {
		return "", fmt.Errorf("create table %s: %w", tableName, tx.Error)
	}

	batches, err := insertBatches(columns, t.Len(), insertBatchSize)
	if err != nil {
		return "", err
	}
	for i, batch := range batches {
		sql := fmt.Sprintf("INSERT INTO %s FORMAT CSV \n%s", quoteIdentifier(tableName), batch)
		if tx := db.Exec(sql); tx.Error != nil {
			return "", fmt.Errorf("insert batch %d into %s: %w", i+1, tableName, tx.Error)
		}
	}

	info, err := getColumnAndTypeList(db, tableName)
	if err != nil {
		return "", err
	}
	numeric := 0
	for _, c := range info {
		if IsNumericType(c.Type) {
			numeric++
		}
	}
	log.Printf("[%s] clickhouse: %d rows saved into %s (%d columns, %d numeric)", runID, t.Len(), tableName, len(info), numeric)
	return tableName, nil
}
