package trace

import (
	"testing"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/anzel/fieldtrace/internal/geom"
)

func TestRectBounds(t *testing.T) {
	pred := RectBounds(-1, -2, 1, 2)
	if pred(geom.Pt(0, 0)) >= 0 {
		t.Error("center must be inside")
	}
	if pred(geom.Pt(0.99, 1.99)) >= 0 {
		t.Error("near corner must be inside")
	}
	for _, p := range []geom.Point{
		geom.Pt(1.5, 0), geom.Pt(-2, 0), geom.Pt(0, 2.5), geom.Pt(3, 3),
	} {
		if pred(p) <= 0 {
			t.Errorf("%v must be outside", p)
		}
	}
}

func TestPolygonBounds(t *testing.T) {
	square := polyclip.Polygon{{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
	}}
	pred := PolygonBounds(square)
	if pred(geom.Pt(1, 1)) >= 0 {
		t.Error("interior point must be inside")
	}
	if pred(geom.Pt(3, 1)) <= 0 {
		t.Error("exterior point must be outside")
	}

	// a square with a square hole, even-odd rule
	holed := polyclip.Polygon{
		{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}},
	}
	pred = PolygonBounds(holed)
	if pred(geom.Pt(0.5, 0.5)) >= 0 {
		t.Error("ring interior must be inside")
	}
	if pred(geom.Pt(2, 2)) <= 0 {
		t.Error("hole must be outside")
	}
}

func TestUnion(t *testing.T) {
	left := RectBounds(-2, -1, 0, 1)
	right := RectBounds(0, -1, 2, 1)
	pred := Union(left, right)

	// the union of "outside left" and "outside right" leaves only the
	// shared edge interior
	if pred(geom.Pt(-1, 0)) <= 0 {
		t.Error("point outside the right rectangle must be excluded")
	}
	if pred(geom.Pt(0, 0)) > 0 {
		t.Error("shared edge must remain inside")
	}
	if got := Union()(geom.Pt(0, 0)); got >= 0 {
		t.Error("empty union must be inside everywhere")
	}
}

func TestBisectCrossing(t *testing.T) {
	pred := RectBounds(-1, -1, 1, 1)
	at := bisectCrossing(pred, geom.Pt(0.5, 0), geom.Pt(1.5, 0), 1e-9)
	if d := at.Distance(geom.Pt(1, 0)); d > 1e-8 {
		t.Errorf("crossing refined to %v, off by %g", at, d)
	}
}
