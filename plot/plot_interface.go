package plot

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// panel is one sub-chart of a Figure, rendered by go-chart to PNG.
type panel interface {
	GetNameGraph() string
	render(w io.Writer) error
}

// xAxisData supplies the x coordinates of a line panel and the axis that
// labels them.
type xAxisData interface {
	getNameXAxis() string
	// xValue returns the coordinate of row i; ok is false for a missing cell.
	xValue(i int) (x float64, ok bool)
	// xLabel returns the text shown for row i on a category axis.
	xLabel(i int) string
	xAxis(lo, hi float64) chart.XAxis
}
