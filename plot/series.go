package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// AxisIndex as an x axis choice means the table index.
const AxisIndex = "index"

// CombinedFigure is the name of the figure produced in combined mode.
const CombinedFigure = "all"

// Series builds the line charts of the selected columns. axes and colors hold
// one entry per column. In combined mode a single figure named "all" carries
// one panel per column; otherwise every column gets its own figure named
// after it.
func Series(t *models.Table, columns, axes []string, colors []drawing.Color, combine bool) ([]*Figure, error) {
	if len(axes) != len(columns) || len(colors) != len(columns) {
		return nil, models.NewConfigurationError("got %d columns, %d x axes and %d colors", len(columns), len(axes), len(colors))
	}

	panels := make([]panel, 0, len(columns))
	for i, col := range columns {
		p, err := newLinePanel(t, col, axes[i], colors[i])
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}

	if combine {
		return []*Figure{{Name: CombinedFigure, panels: panels}}, nil
	}
	figures := make([]*Figure, len(panels))
	for i, p := range panels {
		figures[i] = &Figure{Name: columns[i], panels: []panel{p}}
	}
	return figures, nil
}

// resolveXAxis returns the x data for an axis choice: the index, or any
// column of the table by name.
func resolveXAxis(t *models.Table, name string) (xAxisData, error) {
	var c *models.Column
	switch {
	case name == AxisIndex || (t.Index != nil && t.Index.Name == name):
		if t.Index == nil {
			return newRowNumbersForGraph(t.Len()), nil
		}
		c = t.Index
	default:
		var ok bool
		if c, ok = t.Column(name); !ok {
			return nil, fmt.Errorf("x axis %q: %w", name, models.ErrColumnNotFound)
		}
	}

	switch c.Kind {
	case models.KindTimestamp:
		return newDataDateForGraph(c), nil
	case models.KindNumeric:
		return newDataRangeXValuesForGraph(c), nil
	}
	return newDataXStringsForGraph(c), nil
}

// points returns the (x, y) pairs of a column in row order, skipping rows
// where either side is missing.
func points(x xAxisData, y *models.Column) (xs, ys []float64, rows []int) {
	for i, v := range y.Numbers {
		xv, ok := x.xValue(i)
		if !ok || math.IsNaN(v) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, v)
		rows = append(rows, i)
	}
	return xs, ys, rows
}

type linePanel struct {
	nameGraph string
	nameYAxis string
	x         xAxisData
	xValues   []float64
	yValues   []float64
	color     drawing.Color
}

func newLinePanel(t *models.Table, col, axis string, color drawing.Color) (linePanel, error) {
	c, ok := t.Column(col)
	if !ok {
		return linePanel{}, fmt.Errorf("column %q: %w", col, models.ErrColumnNotFound)
	}
	if !c.IsNumeric() {
		return linePanel{}, fmt.Errorf("column %q is %s: %w", col, c.Kind, models.ErrNotNumeric)
	}
	x, err := resolveXAxis(t, axis)
	if err != nil {
		return linePanel{}, err
	}
	xs, ys, _ := points(x, c)
	if len(xs) == 0 {
		return linePanel{}, &models.EmptyColumnError{Column: col}
	}
	return linePanel{
		nameGraph: strings.ToUpper(col),
		nameYAxis: col,
		x:         x,
		xValues:   xs,
		yValues:   ys,
		color:     color,
	}, nil
}

func (d linePanel) GetNameGraph() string {
	return d.nameGraph
}

func (d linePanel) render(w io.Writer) error {
	xlo, xhi := bounds(d.xValues)
	ylo, yhi := bounds(d.yValues)

	xAxis := d.x.xAxis(xlo, xhi)
	xAxis.Name = strings.ToUpper(xAxis.Name)

	graph := chart.Chart{
		Title: d.nameGraph,
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  40,
				Bottom: 20,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  linePanelWidth,
		Height: linePanelHeight,
		XAxis:  xAxis,
		YAxis: chart.YAxis{
			Name:  d.nameYAxis,
			Range: paddedRange(ylo, yhi),
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return formatTick(vf)
				}
				return ""
			},
			GridMajorStyle: chart.Style{
				StrokeColor:     drawing.ColorFromHex("cccccc"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    d.nameYAxis,
				XValues: d.xValues,
				YValues: d.yValues,
				Style: chart.Style{
					StrokeColor: d.color,
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	return graph.Render(chart.PNG, w)
}
