// Package analysis selects the columns to analyze and reduces them to
// aggregate statistics and describe-style summaries.
package analysis

import "github.com/pivolan/account_analyzer/domain/models"

// AllColumns is the selection request meaning every numeric column.
const AllColumns = "all"

// SelectColumns returns the columns to analyze. The request ["all"] selects
// every numeric data column in table order; any other request is returned as
// given, unchecked against the table.
func SelectColumns(t *models.Table, request []string) []string {
	if len(request) == 1 && request[0] == AllColumns {
		cols := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			if c.IsNumeric() {
				cols = append(cols, c.Name)
			}
		}
		return cols
	}
	cols := make([]string, len(request))
	copy(cols, request)
	return cols
}
