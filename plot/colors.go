package plot

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/colornames"
)

var (
	colorOrange = drawing.ColorFromHex("ffa500")
	colorPurple = drawing.ColorFromHex("800080")
	colorGreen  = drawing.ColorFromHex("008000")
)

// statPalette colors the bars of the aggregate chart, one color per statistic.
var statPalette = []drawing.Color{
	drawing.ColorRed,
	drawing.ColorBlue,
	colorOrange,
	colorPurple,
	colorGreen,
}

// shortColors are the single letter color codes people are used to from matplotlib.
var shortColors = map[string]string{
	"b": "blue",
	"g": "green",
	"r": "red",
	"c": "cyan",
	"m": "magenta",
	"y": "yellow",
	"k": "black",
	"w": "white",
}

// StatColors returns n bar colors. More than five statistics reuse the palette.
func StatColors(n int) []drawing.Color {
	colors := make([]drawing.Color, n)
	for i := range colors {
		colors[i] = statPalette[i%len(statPalette)]
	}
	return colors
}

// ParseColor accepts an X11/CSS color name, a one letter matplotlib code or #rrggbb.
func ParseColor(name string) (drawing.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "#") {
		hexPart := strings.TrimPrefix(name, "#")
		if len(hexPart) == 3 {
			hexPart = string([]byte{hexPart[0], hexPart[0], hexPart[1], hexPart[1], hexPart[2], hexPart[2]})
		}
		rgb, err := hex.DecodeString(hexPart)
		if err != nil || len(rgb) != 3 {
			return drawing.Color{}, fmt.Errorf("invalid color %q", name)
		}
		return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
	}
	if long, ok := shortColors[name]; ok {
		name = long
	}
	c, ok := colornames.Map[name]
	if !ok {
		return drawing.Color{}, fmt.Errorf("unknown color %q", name)
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// ParseColors parses every name, failing on the first unknown one.
func ParseColors(names []string) ([]drawing.Color, error) {
	colors := make([]drawing.Color, len(names))
	for i, name := range names {
		c, err := ParseColor(name)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return colors, nil
}
