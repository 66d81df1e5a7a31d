// Package export serializes simplified field lines to SVG. This is the thin
// rendering edge of the tool; all geometry decisions happen in trace.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Canvas maps field coordinates to image pixels. The y axis points up in
// field space and down in the image.
type Canvas struct {
	X0, Y0, X1, Y1 float64
	Width, Height  int
}

func (c Canvas) toImage(p geom.Point) (float64, float64) {
	sx := float64(c.Width) / (c.X1 - c.X0)
	sy := float64(c.Height) / (c.Y1 - c.Y0)
	return (p.X - c.X0) * sx, float64(c.Height) - (p.Y-c.Y0)*sy
}

// SVG renders the polylines as a standalone SVG document. Coordinates are
// rounded to digits decimal places.
func SVG(c Canvas, lines []trace.Polyline, digits int) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		c.Width, c.Height, c.Width, c.Height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	sb.WriteString(`<g stroke="#000000" stroke-width="2" fill="none" stroke-linejoin="round">` + "\n")

	for _, pl := range lines {
		if len(pl.Vertices) < 2 {
			continue
		}
		sb.WriteString(pathData(c, pl, digits))
		sb.WriteString("\n")
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func pathData(c Canvas, pl trace.Polyline, digits int) string {
	var sb strings.Builder
	sb.WriteString(`<path d="`)
	for i, v := range pl.Vertices {
		x, y := c.toImage(v.P)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%s %s ", cmd, round(x, digits), round(y, digits))
	}
	if pl.Closed {
		sb.WriteString("Z")
	}
	sb.WriteString(`"/>`)
	return sb.String()
}

// round formats v with the given decimals, trimming trailing zeros so the
// output stays compact.
func round(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	scale := math.Pow(10, float64(digits))
	v = math.Round(v*scale) / scale
	s := fmt.Sprintf("%.*f", digits, v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}
