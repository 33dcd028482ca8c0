package main

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var specialSymbols = regexp.MustCompile("[^a-zA-Z0-9]+")

func getMD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// replaceSpecialSymbols transliterates the input to ASCII and reduces it to
// letters, digits and single underscores.
func replaceSpecialSymbols(input string) string {
	processedString := specialSymbols.ReplaceAllString(unidecode.Unidecode(input), "_")

	// Remove any underscores at the beginning or end of the string
	return strings.Trim(processedString, "_")
}

// openClickHouse connects over the MySQL wire protocol port of ClickHouse.
func openClickHouse(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to clickhouse: %w", err)
	}
	return db, nil
}

type ColumnInfo struct {
	Name string
	Type string // Date DateTime64 Int64 Float64 String, possibly Nullable(...)
}

func getColumnAndTypeList(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	query := fmt.Sprintf("DESCRIBE TABLE %s", quoteIdentifier(tableName))
	var columns []ColumnInfo
	tx := db.Raw(query).Scan(&columns)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return columns, nil
}

func IsNumericType(_type string) bool {
	return go_utils.InArray(_type, []string{"Int64", "Float64", "Nullable(Int64)", "Nullable(Float64)"})
}

func quoteIdentifier(name string) string {
	return "`" + name + "`"
}
