package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pivolan/account_analyzer/domain/models"
)

// GenerateTable renders the statistics result with one row per statistic and
// one column per selected column.
func GenerateTable(result *models.StatsResult) string {
	t := table.NewWriter()

	header := table.Row{"Stat"}
	for _, col := range result.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, stat := range result.Stats {
		row := table.Row{strings.ToUpper(stat.String())}
		for _, col := range result.Columns {
			v, _ := result.Get(stat, col)
			row = append(row, formatStat(v))
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs(numericColumnConfigs(len(result.Columns)))
	return t.Render()
}

// GenerateSummaryTable renders the describe table.
func GenerateSummaryTable(s *models.Summary) string {
	t := table.NewWriter()

	header := table.Row{""}
	for _, col := range s.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, measure := range s.Measures {
		row := table.Row{measure}
		for _, v := range s.Values[measure] {
			row = append(row, formatStat(v))
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs(numericColumnConfigs(len(s.Columns)))
	return t.Render()
}

func numericColumnConfigs(n int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, n)
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 2, Align: text.AlignRight}
	}
	return configs
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
