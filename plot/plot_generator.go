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

const (
	barPanelHeight  = 480
	linePanelWidth  = 960
	linePanelHeight = 600
)

// Aggregate builds the cumulative statistics figure: one bar panel per column,
// one bar per requested statistic.
func Aggregate(name string, result *models.StatsResult, columns []string) (*Figure, error) {
	colors := StatColors(len(result.Stats))
	fig := &Figure{Name: name}
	for _, col := range columns {
		p := barPanel{nameGraph: strings.ToUpper(col)}
		for i, stat := range result.Stats {
			v, ok := result.Get(stat, col)
			if !ok {
				return nil, fmt.Errorf("no %s value for column %q", stat, col)
			}
			p.labels = append(p.labels, strings.ToUpper(stat.String()))
			p.yValues = append(p.yValues, v)
			p.colors = append(p.colors, colors[i])
		}
		fig.panels = append(fig.panels, p)
	}
	return fig, nil
}

type barPanel struct {
	nameGraph string
	labels    []string
	yValues   []float64
	colors    []drawing.Color
}

func (d barPanel) GetNameGraph() string {
	return d.nameGraph
}

func (d barPanel) generateBarValues() []chart.Value {
	bars := make([]chart.Value, len(d.yValues))
	for i, v := range d.yValues {
		bars[i] = chart.Value{
			Value: v,
			Label: d.labels[i],
			Style: chart.Style{
				FillColor:   d.colors[i],
				StrokeColor: d.colors[i],
				StrokeWidth: 1,
			},
		}
	}
	return bars
}

func (d barPanel) calculateChartDimensions(barWidth int) (width, height int) {
	const paddingY = 120
	width = (barWidth+barWidth/2)*len(d.yValues) + paddingY
	if width < 320 {
		width = 320
	}
	return width, barPanelHeight
}

func (d barPanel) render(w io.Writer) error {
	if len(d.yValues) == 0 {
		return fmt.Errorf("panel %s has no bars", d.nameGraph)
	}
	lo, hi := 0.0, 0.0
	for _, v := range d.yValues {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	ticks := generateGrid(lo, hi)
	barValues := d.generateBarValues()
	width, height := d.calculateChartDimensions(50)

	bar := chart.BarChart{
		Title: d.nameGraph,
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: customizePaddingXBottom(barValues),
			},
			FillColor: drawing.ColorWhite,
		},
		Width:        width,
		Height:       height,
		BarWidth:     50,
		BarSpacing:   25,
		Bars:         barValues,
		UseBaseValue: true, // столбцы растут от нуля, отрицательные вниз
		BaseValue:    0,
		XAxis: chart.Style{
			StrokeWidth: 2, // Толщина линии
			StrokeColor: chart.ColorBlack,
			FontSize:    11,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: ticks[0].Value,
				Max: ticks[len(ticks)-1].Value,
			},
			Ticks: ticks,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor:     chart.ColorBlack,
				StrokeWidth:     1,
				DotWidth:        1,
				StrokeDashArray: []float64{5.0, 5.0}, // Пунктирная линия
			},
		},
	}
	return bar.Render(chart.PNG, w)
}

// generateGrid returns y ticks covering [lo, hi] with a rounded step. The
// first and last tick also serve as the axis range.
func generateGrid(lo, hi float64) []chart.Tick {
	span := hi - lo
	if span <= 0 {
		span = math.Max(math.Abs(hi), 1)
	}
	step := calculateGridStep(span)
	start := math.Floor(lo/step) * step
	n := int(math.Ceil((hi-start)/step - 1e-9))
	if n < 1 {
		n = 1
	}
	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := start + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func calculateGridStep(maxValue float64) float64 {
	// Проверка на корректность входного значения
	if maxValue <= 0 {
		return 0
	}

	// Обработка очень маленьких чисел
	if maxValue < 1e-10 {
		return 1e-10
	}

	// Находим порядок величины максимального значения
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))

	// Нормализуем значение к диапазону [1, 10)
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude

	// Округляем большие шаги до "красивых" чисел
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}

	return finalStep
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return 20 + count*8
}

func formatTick(v float64) string {
	switch av := math.Abs(v); {
	case av == 0:
		return "0"
	case av >= 1e6 || av < 1e-3:
		return fmt.Sprintf("%.2g", v)
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}

// paddedRange widens a degenerate range so go-chart has a non-zero delta.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.05, 1)
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
