package models

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound indicates a requested column is not part of the table.
var ErrColumnNotFound = errors.New("column not found")

// ErrNotNumeric indicates a numeric reduction was requested on a non-numeric column.
var ErrNotNumeric = errors.New("column is not numeric")

// ConfigurationError is a bad command line combination, caught before any processing.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedFormatError is returned for a source file with an unknown extension.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported source format: %s (expected .csv, .xlsx or .xls)", e.Path)
}

// UnknownStatisticError names a statistic identifier outside mean, med, min, max.
type UnknownStatisticError struct {
	Name string
}

func (e *UnknownStatisticError) Error() string {
	return fmt.Sprintf("unknown statistic %q (expected one of mean, med, min, max)", e.Name)
}

// EmptyColumnError is returned when a reduction would run over zero values.
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q has no values", e.Column)
}
