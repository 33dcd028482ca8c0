// Package plot renders the aggregate bar chart, the per-column line charts and
// the interactive HTML report. Figures are kept in memory until the writer
// asks for their PNG bytes.
package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Figure is a named, not yet rendered chart made of panels laid out left to right.
type Figure struct {
	Name   string
	panels []panel
}

// Panels returns the number of sub-charts.
func (f *Figure) Panels() int {
	return len(f.panels)
}

// Titles returns the sub-chart titles in drawing order.
func (f *Figure) Titles() []string {
	titles := make([]string, len(f.panels))
	for i, p := range f.panels {
		titles[i] = p.GetNameGraph()
	}
	return titles
}

// Render draws every panel and writes the composed canvas as one PNG.
func (f *Figure) Render(w io.Writer) error {
	if len(f.panels) == 0 {
		return fmt.Errorf("figure %s has no panels", f.Name)
	}
	if len(f.panels) == 1 {
		if err := f.panels[0].render(w); err != nil {
			return fmt.Errorf("error rendering chart %s: %v", f.Name, err)
		}
		return nil
	}

	images := make([]image.Image, 0, len(f.panels))
	width, height := 0, 0
	for _, p := range f.panels {
		buffer := bytes.NewBuffer([]byte{})
		if err := p.render(buffer); err != nil {
			return fmt.Errorf("error rendering chart %s, panel %s: %v", f.Name, p.GetNameGraph(), err)
		}
		img, err := png.Decode(buffer)
		if err != nil {
			return fmt.Errorf("error decoding panel %s: %v", p.GetNameGraph(), err)
		}
		images = append(images, img)
		width += img.Bounds().Dx()
		if img.Bounds().Dy() > height {
			height = img.Bounds().Dy()
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	x := 0
	for _, img := range images {
		draw.Copy(canvas, image.Pt(x, 0), img, img.Bounds(), draw.Over, nil)
		x += img.Bounds().Dx()
	}
	return png.Encode(w, canvas)
}

// Bytes renders the figure into memory.
func (f *Figure) Bytes() ([]byte, error) {
	buffer := bytes.NewBuffer([]byte{})
	if err := f.Render(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
