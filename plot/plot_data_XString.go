package plot

import (
	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
)

// maxCategoryLabels caps the number of x tick labels on a categorical axis.
const maxCategoryLabels = 25

// dataXStringsForGraph places rows at their position and labels them with
// the text of the x column, keeping row order.
type dataXStringsForGraph struct {
	nameXAxis string
	xValues   []string
}

func newDataXStringsForGraph(c *models.Column) dataXStringsForGraph {
	return dataXStringsForGraph{nameXAxis: c.Name, xValues: c.Raw}
}

func (d dataXStringsForGraph) getNameXAxis() string {
	return d.nameXAxis
}

func (d dataXStringsForGraph) xValue(i int) (float64, bool) {
	return float64(i), true
}

func (d dataXStringsForGraph) xLabel(i int) string {
	return d.xValues[i]
}

func (d dataXStringsForGraph) xAxis(lo, hi float64) chart.XAxis {
	return chart.XAxis{
		Name:  d.nameXAxis,
		Range: paddedRange(lo, hi),
		Ticks: d.generateTicks(int(lo), int(hi)),
		Style: chart.Style{TextRotationDegrees: 45, FontSize: 9},
	}
}

func (d dataXStringsForGraph) generateTicks(first, last int) []chart.Tick {
	step := (last-first)/maxCategoryLabels + 1
	var ticks []chart.Tick
	for i := first; i <= last; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: d.xValues[i]})
	}
	return ticks
}
