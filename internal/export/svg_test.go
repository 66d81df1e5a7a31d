package export

import (
	"strings"
	"testing"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

func testCanvas() Canvas {
	return Canvas{X0: -2, Y0: -1, X1: 2, Y1: 1, Width: 400, Height: 200}
}

func TestCanvasMapping(t *testing.T) {
	c := testCanvas()
	x, y := c.toImage(geom.Pt(-2, 1))
	if x != 0 || y != 0 {
		t.Errorf("top-left corner maps to (%g, %g), want (0, 0)", x, y)
	}
	x, y = c.toImage(geom.Pt(2, -1))
	if x != 400 || y != 200 {
		t.Errorf("bottom-right corner maps to (%g, %g), want (400, 200)", x, y)
	}
	x, y = c.toImage(geom.Pt(0, 0))
	if x != 200 || y != 100 {
		t.Errorf("center maps to (%g, %g), want (200, 100)", x, y)
	}
}

func TestSVGDocument(t *testing.T) {
	pl := trace.Polyline{Vertices: []trace.Vertex{
		{P: geom.Pt(-2, 0)},
		{P: geom.Pt(0, 0)},
		{P: geom.Pt(2, 0)},
	}}
	doc := SVG(testCanvas(), []trace.Polyline{pl}, 2)

	for _, want := range []string{
		`<?xml version="1.0"`,
		`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="200"`,
		`<path d="M0 100 L200 100 L400 100 "/>`,
		"</svg>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "Z") {
		t.Error("open polyline rendered with a close command")
	}
}

func TestSVGClosedPath(t *testing.T) {
	pl := trace.Polyline{
		Vertices: []trace.Vertex{
			{P: geom.Pt(0, 0)},
			{P: geom.Pt(1, 0)},
			{P: geom.Pt(1, 0.5)},
		},
		Closed: true,
	}
	doc := SVG(testCanvas(), []trace.Polyline{pl}, 2)
	if !strings.Contains(doc, `Z"/>`) {
		t.Errorf("closed polyline lacks the close command:\n%s", doc)
	}
}

func TestSVGSkipsDegenerate(t *testing.T) {
	lines := []trace.Polyline{
		{},
		{Vertices: []trace.Vertex{{P: geom.Pt(0, 0)}}},
	}
	doc := SVG(testCanvas(), lines, 2)
	if strings.Contains(doc, "<path") {
		t.Error("degenerate polylines must not produce paths")
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		v      float64
		digits int
		want   string
	}{
		{1.5, 2, "1.5"},
		{1.25, 1, "1.3"},
		{100, 2, "100"},
		{0.001, 2, "0"},
		{-0.0001, 2, "0"},
		{3.14159, 3, "3.142"},
		{2.5, -1, "3"},
	}
	for _, tc := range cases {
		if got := round(tc.v, tc.digits); got != tc.want {
			t.Errorf("round(%g, %d) = %q, want %q", tc.v, tc.digits, got, tc.want)
		}
	}
}
