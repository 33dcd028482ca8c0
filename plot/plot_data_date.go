package plot

import (
	"time"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
)

// dataDateForGraph places rows on a time axis.
type dataDateForGraph struct {
	nameXAxis string
	times     []time.Time
}

func newDataDateForGraph(c *models.Column) dataDateForGraph {
	return dataDateForGraph{nameXAxis: c.Name, times: c.Times}
}

func (d dataDateForGraph) getNameXAxis() string {
	return d.nameXAxis
}

func (d dataDateForGraph) xValue(i int) (float64, bool) {
	if d.times[i].IsZero() {
		return 0, false
	}
	return chart.TimeToFloat64(d.times[i]), true
}

func (d dataDateForGraph) xLabel(i int) string {
	t := d.times[i]
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

func (d dataDateForGraph) xAxis(lo, hi float64) chart.XAxis {
	return chart.XAxis{
		Name:           d.nameXAxis,
		Range:          paddedRange(lo, hi),
		ValueFormatter: chart.TimeValueFormatterWithFormat(d.layout(lo, hi)),
		Style:          chart.Style{TextRotationDegrees: 45, FontSize: 9},
	}
}

// layout picks a tick label format from the covered time span.
func (d dataDateForGraph) layout(lo, hi float64) string {
	span := chart.TimeFromFloat64(hi).Sub(chart.TimeFromFloat64(lo))
	switch {
	case span <= 48*time.Hour:
		return "2006-01-02 15:04"
	case span >= 3*365*24*time.Hour:
		return "2006-01"
	}
	return "2006-01-02"
}
