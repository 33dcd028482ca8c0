package plot

import (
	"math"
	"strconv"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
)

// dataRangeXValuesForGraph places rows on a continuous numeric axis.
type dataRangeXValuesForGraph struct {
	nameXAxis string
	xValues   []float64
}

func newDataRangeXValuesForGraph(c *models.Column) dataRangeXValuesForGraph {
	return dataRangeXValuesForGraph{nameXAxis: c.Name, xValues: c.Numbers}
}

// newRowNumbersForGraph is used when the table has no index: rows are numbered from 0.
func newRowNumbersForGraph(rows int) dataRangeXValuesForGraph {
	x := make([]float64, rows)
	for i := range x {
		x[i] = float64(i)
	}
	return dataRangeXValuesForGraph{nameXAxis: "index", xValues: x}
}

func (d dataRangeXValuesForGraph) getNameXAxis() string {
	return d.nameXAxis
}

func (d dataRangeXValuesForGraph) xValue(i int) (float64, bool) {
	v := d.xValues[i]
	return v, !math.IsNaN(v)
}

func (d dataRangeXValuesForGraph) xLabel(i int) string {
	return strconv.FormatFloat(d.xValues[i], 'f', -1, 64)
}

func (d dataRangeXValuesForGraph) xAxis(lo, hi float64) chart.XAxis {
	return chart.XAxis{
		Name:  d.nameXAxis,
		Range: paddedRange(lo, hi),
		ValueFormatter: func(v interface{}) string {
			if vf, isFloat := v.(float64); isFloat {
				return formatTick(vf)
			}
			return ""
		},
		Style: chart.Style{FontSize: 9},
	}
}
