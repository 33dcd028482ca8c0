package plot

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/pivolan/account_analyzer/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const accountCSV = `date,note,deposit,withdrawal,balance
2023-01-01,salary,1000,0,1000
2023-01-02,rent,0,500,500
2023-01-03,,0,,500
2023-01-04,food,0,75.5,424.5
2023-01-05,bonus,250,0,674.5
`

func accountTable(t *testing.T) *models.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(accountCSV))
	require.NoError(t, err)
	require.NoError(t, table.SetIndex(tbl, "date", true))
	return tbl
}

func TestCalculateGridStep(t *testing.T) {
	tests := []struct {
		name     string
		maxValue float64
		want     float64
	}{
		{"Zero", 0, 0},
		{"Negative", -5, 0},
		{"Tiny", 1e-12, 1e-10},
		{"One", 1, 0.2},
		{"Seven", 7, 2},
		{"Hundreds", 450, 100},
		{"Thousands", 1200, 500},
		{"Big", 9000, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calculateGridStep(tt.maxValue), 1e-12)
		})
	}
}

func TestGenerateGridCoversRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{"Positive", 0, 1200},
		{"Negative", -75.5, 0},
		{"Mixed", -30, 410},
		{"Flat", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := generateGrid(tt.lo, tt.hi)
			require.GreaterOrEqual(t, len(ticks), 2)
			assert.LessOrEqual(t, ticks[0].Value, tt.lo)
			assert.GreaterOrEqual(t, ticks[len(ticks)-1].Value, tt.hi)
			for i := 1; i < len(ticks); i++ {
				assert.Greater(t, ticks[i].Value, ticks[i-1].Value)
			}
		})
	}
}

func TestStatColors(t *testing.T) {
	assert.Equal(t, []drawing.Color{drawing.ColorRed, drawing.ColorBlue}, StatColors(2))
	colors := StatColors(7)
	assert.Len(t, colors, 7)
	assert.Equal(t, colors[0], colors[5])
	assert.Equal(t, colors[1], colors[6])
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    drawing.Color
		wantErr bool
	}{
		{"Name", "red", drawing.Color{R: 255, A: 255}, false},
		{"NameUpper", "Orange", drawing.Color{R: 255, G: 165, A: 255}, false},
		{"Short", "k", drawing.Color{A: 255}, false},
		{"Hex", "#0080ff", drawing.Color{G: 128, B: 255, A: 255}, false},
		{"ShortHex", "#fff", drawing.Color{R: 255, G: 255, B: 255, A: 255}, false},
		{"BadHex", "#zzzzzz", drawing.Color{}, true},
		{"Unknown", "blurple", drawing.Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate(t *testing.T) {
	result := &models.StatsResult{
		Stats:   []models.Statistic{models.StatMean, models.StatMax},
		Columns: []string{"deposit", "withdrawal"},
		Values: map[models.Statistic]map[string]float64{
			models.StatMean: {"deposit": 250, "withdrawal": 143.875},
			models.StatMax:  {"deposit": 1000, "withdrawal": 500},
		},
	}
	fig, err := Aggregate("account_cumulative_stats", result, result.Columns)
	require.NoError(t, err)
	assert.Equal(t, "account_cumulative_stats", fig.Name)
	assert.Equal(t, []string{"DEPOSIT", "WITHDRAWAL"}, fig.Titles())

	p := fig.panels[0].(barPanel)
	assert.Equal(t, []string{"MEAN", "MAX"}, p.labels)
	assert.Equal(t, []float64{250, 1000}, p.yValues)

	b, err := fig.Bytes()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	w0, _ := p.calculateChartDimensions(50)
	w1, _ := fig.panels[1].(barPanel).calculateChartDimensions(50)
	assert.Equal(t, w0+w1, img.Bounds().Dx())
}

func TestAggregateMissingValue(t *testing.T) {
	result := &models.StatsResult{
		Stats:   []models.Statistic{models.StatMin},
		Columns: []string{"deposit"},
		Values:  map[models.Statistic]map[string]float64{models.StatMin: {}},
	}
	_, err := Aggregate("x", result, result.Columns)
	assert.Error(t, err)
}

// colorRows returns the first and last image row holding a pixel of color c,
// or -1, -1 when there is none.
func colorRows(img image.Image, c drawing.Color) (top, bottom int) {
	top, bottom = -1, -1
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if uint8(r>>8) == c.R && uint8(g>>8) == c.G && uint8(bl>>8) == c.B {
				if top < 0 {
					top = y
				}
				bottom = y
				break
			}
		}
	}
	return top, bottom
}

func TestBarPanelMixedSigns(t *testing.T) {
	p := barPanel{
		nameGraph: "WITHDRAWAL",
		labels:    []string{"MAX", "MEAN"},
		yValues:   []float64{50, -100},
		colors:    []drawing.Color{drawing.ColorRed, drawing.ColorBlue},
	}
	var buf bytes.Buffer
	require.NoError(t, p.render(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	redTop, redBottom := colorRows(img, drawing.ColorRed)
	blueTop, blueBottom := colorRows(img, drawing.ColorBlue)
	require.GreaterOrEqual(t, redTop, 0, "positive bar is drawn")
	require.GreaterOrEqual(t, blueTop, 0, "negative bar is drawn")

	// Оба столбца начинаются на линии нуля: положительный вверх, отрицательный вниз.
	assert.LessOrEqual(t, redBottom, blueTop+2)
	assert.Greater(t, blueBottom, redBottom)
	assert.InDelta(t, 2.0, float64(blueBottom-blueTop)/float64(redBottom-redTop), 0.1)
}

func TestSeriesSeparate(t *testing.T) {
	tbl := accountTable(t)
	figures, err := Series(tbl, []string{"deposit", "withdrawal"}, []string{"index", "index"},
		[]drawing.Color{drawing.ColorRed, drawing.ColorBlue}, false)
	require.NoError(t, err)
	require.Len(t, figures, 2)
	assert.Equal(t, "deposit", figures[0].Name)
	assert.Equal(t, "withdrawal", figures[1].Name)

	p := figures[1].panels[0].(linePanel)
	assert.Len(t, p.xValues, 4, "missing withdrawal is skipped")
	assert.Equal(t, []float64{0, 500, 75.5, 0}, p.yValues)
	assert.IsType(t, dataDateForGraph{}, p.x)

	b, err := figures[0].Bytes()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, linePanelWidth, img.Bounds().Dx())
	assert.Equal(t, linePanelHeight, img.Bounds().Dy())
}

func TestSeriesCombined(t *testing.T) {
	tbl := accountTable(t)
	figures, err := Series(tbl, []string{"deposit", "balance"}, []string{"index", "note"},
		[]drawing.Color{drawing.ColorRed, drawing.ColorRed}, true)
	require.NoError(t, err)
	require.Len(t, figures, 1)
	assert.Equal(t, "all", figures[0].Name)
	assert.Equal(t, []string{"DEPOSIT", "BALANCE"}, figures[0].Titles())
	assert.IsType(t, dataXStringsForGraph{}, figures[0].panels[1].(linePanel).x)

	b, err := figures[0].Bytes()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 2*linePanelWidth, img.Bounds().Dx())
}

func TestSeriesXAxisKinds(t *testing.T) {
	tbl := accountTable(t)
	tests := []struct {
		name string
		axis string
		want xAxisData
	}{
		{"Index", "index", dataDateForGraph{}},
		{"IndexByName", "date", dataDateForGraph{}},
		{"Numeric", "balance", dataRangeXValuesForGraph{}},
		{"Text", "note", dataXStringsForGraph{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := resolveXAxis(tbl, tt.axis)
			require.NoError(t, err)
			assert.IsType(t, tt.want, x)
		})
	}
}

func TestSeriesSingleRow(t *testing.T) {
	tbl, err := table.ReadCSV(strings.NewReader("id,amount\n1,42\n"))
	require.NoError(t, err)
	require.NoError(t, table.SetIndex(tbl, "id", false))

	figures, err := Series(tbl, []string{"amount"}, []string{"index"}, []drawing.Color{drawing.ColorBlue}, false)
	require.NoError(t, err)
	_, err = figures[0].Bytes()
	assert.NoError(t, err)
}

func TestSeriesErrors(t *testing.T) {
	tbl := accountTable(t)
	red := []drawing.Color{drawing.ColorRed}

	_, err := Series(tbl, []string{"deposit", "balance"}, []string{"index"}, red, false)
	var cfg *models.ConfigurationError
	assert.True(t, errors.As(err, &cfg))

	_, err = Series(tbl, []string{"missing"}, []string{"index"}, red, false)
	assert.True(t, errors.Is(err, models.ErrColumnNotFound))

	_, err = Series(tbl, []string{"note"}, []string{"index"}, red, false)
	assert.True(t, errors.Is(err, models.ErrNotNumeric))

	_, err = Series(tbl, []string{"deposit"}, []string{"nowhere"}, red, false)
	assert.True(t, errors.Is(err, models.ErrColumnNotFound))
}

func TestPaddedRange(t *testing.T) {
	r := paddedRange(5, 5)
	assert.Less(t, r.Min, 5.0)
	assert.Greater(t, r.Max, 5.0)

	r = paddedRange(0, 0)
	assert.False(t, r.IsZero())

	r = paddedRange(-1, 3)
	assert.Equal(t, -1.0, r.Min)
	assert.Equal(t, 3.0, r.Max)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0", formatTick(0))
	assert.Equal(t, "1200", formatTick(1200))
	assert.Equal(t, "0.25", formatTick(0.25))
	assert.Equal(t, "-7.5", formatTick(-7.5))
}

func TestHTMLReport(t *testing.T) {
	tbl := accountTable(t)
	result := &models.StatsResult{
		Stats:   []models.Statistic{models.StatMean},
		Columns: []string{"deposit"},
		Values:  map[models.Statistic]map[string]float64{models.StatMean: {"deposit": 250}},
	}

	var buf bytes.Buffer
	require.NoError(t, HTMLReport(&buf, "account", result, tbl, []string{"deposit"}, []string{"index"}))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "account")
	assert.Contains(t, html, "DEPOSIT")
	assert.Contains(t, html, "2023-01-05")
}
