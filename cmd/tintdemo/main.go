// Command tintdemo runs a scripted coloring session over a line-art
// image and saves the composited result.
//
// With no input image it generates a simple line drawing (a grid of
// outlined cells) so the demo works out of the box.
package main

import (
	"flag"
	"log"

	"github.com/disintegration/imaging"

	"github.com/tintbox/tint"
)

func main() {
	var (
		input  = flag.String("input", "", "line-art image (PNG/JPEG); generated if empty")
		output = flag.String("output", "colored.png", "output file")
		width  = flag.Int("width", 640, "canvas width")
		height = flag.Int("height", 480, "canvas height")
	)
	flag.Parse()

	art := loadLineArt(*input, *width, *height)
	caps := tint.DetectCapabilities()
	log.Printf("device tier: %s (history %d, brush %.0f-%.0fpx)",
		caps.Tier, caps.MaxHistorySteps, caps.BrushSize.Min, caps.BrushSize.Max)

	s := tint.NewSession(art, tint.WithCapabilities(caps))

	// Fill a few regions.
	s.SetTool(tint.ToolFill)
	fills := []struct {
		x, y float64
		hex  string
	}{
		{float64(*width) * 0.25, float64(*height) * 0.25, "#F94144"},
		{float64(*width) * 0.75, float64(*height) * 0.25, "#F9C74F"},
		{float64(*width) * 0.25, float64(*height) * 0.75, "#90BE6D"},
		{float64(*width) * 0.75, float64(*height) * 0.75, "#577590"},
	}
	for _, f := range fills {
		s.SetColor(tint.Hex(f.hex))
		s.HandlePointer(tint.PointerSample{Phase: tint.PhaseBegin, X: f.x, Y: f.y})
	}

	// Draw a pressure-varied stroke across the canvas.
	s.SetTool(tint.ToolBrush)
	s.SetColor(tint.Hex("#277DA1"))
	s.SetBrushWidth(12)
	steps := 40
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sample := tint.PointerSample{
			Phase:       tint.PhaseMove,
			X:           float64(*width) * (0.1 + 0.8*t),
			Y:           float64(*height) * (0.5 + 0.2*pressureWave(t)),
			Pressure:    0.2 + 0.8*pressureWave(t),
			HasPressure: true,
		}
		switch i {
		case 0:
			sample.Phase = tint.PhaseBegin
		case steps:
			sample.Phase = tint.PhaseEnd
		}
		s.HandlePointer(sample)
	}

	frame := s.Render()
	if err := frame.SavePNG(*output); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("saved %s (%dx%d, undo depth %d)", *output, frame.Width(), frame.Height(), caps.MaxHistorySteps)
}

// pressureWave produces a rise-and-fall pressure profile over [0, 1].
func pressureWave(t float64) float64 {
	if t < 0.5 {
		return 2 * t
	}
	return 2 * (1 - t)
}

// loadLineArt opens and fits the input image to the canvas, or
// generates a grid of outlined cells when no input is given.
func loadLineArt(path string, width, height int) *tint.Pixmap {
	if path == "" {
		return generateLineArt(width, height)
	}
	img, err := imaging.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	fitted := imaging.Fit(img, width, height, imaging.Lanczos)
	return tint.FromImage(fitted)
}

// generateLineArt draws a white canvas with a dark grid of cell
// outlines, two pixels thick.
func generateLineArt(width, height int) *tint.Pixmap {
	pm := tint.NewPixmap(width, height)
	pm.Clear(tint.White)

	ink := tint.Hex("#1D1D1D")
	cell := 0
	if width < height {
		cell = width / 2
	} else {
		cell = height / 2
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			onGrid := x%cell < 2 || y%cell < 2 || x >= width-2 || y >= height-2
			if onGrid {
				pm.SetPixel(x, y, ink)
			}
		}
	}
	return pm
}
