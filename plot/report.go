package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pivolan/account_analyzer/domain/models"
)

// HTMLReport writes an interactive page with a grouped bar chart of the
// statistics and one line chart per column against its x axis.
func HTMLReport(w io.Writer, title string, result *models.StatsResult, t *models.Table, columns, axes []string) error {
	if len(axes) != len(columns) {
		return models.NewConfigurationError("got %d columns and %d x axes", len(columns), len(axes))
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(statsBarChart(title, result))

	for i, col := range columns {
		line, err := seriesLineChart(t, col, axes[i])
		if err != nil {
			return err
		}
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("error rendering report: %v", err)
	}
	return nil
}

func statsBarChart(title string, result *models.StatsResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "cumulative statistics"}),
	)

	labels := make([]string, len(result.Columns))
	for i, col := range result.Columns {
		labels[i] = strings.ToUpper(col)
	}
	bar.SetXAxis(labels)

	for _, stat := range result.Stats {
		data := make([]opts.BarData, len(result.Columns))
		for i, col := range result.Columns {
			v, _ := result.Get(stat, col)
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(strings.ToUpper(stat.String()), data)
	}
	return bar
}

func seriesLineChart(t *models.Table, col, axis string) (*charts.Line, error) {
	c, ok := t.Column(col)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", col, models.ErrColumnNotFound)
	}
	if !c.IsNumeric() {
		return nil, fmt.Errorf("column %q is %s: %w", col, c.Kind, models.ErrNotNumeric)
	}
	x, err := resolveXAxis(t, axis)
	if err != nil {
		return nil, err
	}
	_, ys, rows := points(x, c)

	labels := make([]string, len(rows))
	data := make([]opts.LineData, len(rows))
	for i, row := range rows {
		labels[i] = x.xLabel(row)
		data[i] = opts.LineData{Value: ys[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: strings.ToUpper(col)}),
		charts.WithXAxisOpts(opts.XAxis{Name: strings.ToUpper(x.getNameXAxis())}),
	)
	line.SetXAxis(labels).AddSeries(col, data)
	return line, nil
}
