package trace

import (
	"testing"

	"github.com/anzel/fieldtrace/internal/geom"
)

func TestSimplifyStraightLine(t *testing.T) {
	c := lineCurve(t, 50)
	pl := Simplify(c, 1e-3)
	if len(pl.Vertices) != 2 {
		t.Fatalf("straight line simplified to %d vertices, want 2", len(pl.Vertices))
	}
	if pl.Vertices[0].P.Distance(geom.Pt(0, 0)) > 1e-12 ||
		pl.Vertices[1].P.Distance(geom.Pt(49, 0)) > 1e-12 {
		t.Errorf("endpoints moved: %v .. %v", pl.Vertices[0].P, pl.Vertices[1].P)
	}
}

func TestSimplifyDegenerate(t *testing.T) {
	if pl := Simplify(nil, 1e-3); len(pl.Vertices) != 0 {
		t.Errorf("nil curve: %d vertices", len(pl.Vertices))
	}
	if pl := Simplify(&DenseCurve{}, 1e-3); len(pl.Vertices) != 0 {
		t.Errorf("empty curve: %d vertices", len(pl.Vertices))
	}

	one, err := NewDenseCurve([]Sample{{T: 0, P: geom.Pt(3, 4), V: geom.V(1, 0), H: 1}})
	if err != nil {
		t.Fatal(err)
	}
	pl := Simplify(one, 1e-3)
	if len(pl.Vertices) != 1 || pl.Vertices[0].P.Distance(geom.Pt(3, 4)) > 0 {
		t.Errorf("single-sample curve: %+v", pl.Vertices)
	}
}

func TestSimplifyCircleDeviation(t *testing.T) {
	c := circleCurve(t, 0.05)
	for _, dev := range []float64{0.05, 0.01, 1e-3} {
		pl := Simplify(c, dev)
		if len(pl.Vertices) < 3 {
			t.Fatalf("dev %g: only %d vertices for a circle", dev, len(pl.Vertices))
		}
		// the simplifier samples finitely, so allow a small slack over the
		// requested tolerance
		if got := MaxDeviation(c, pl, 200); got > dev*1.05 {
			t.Errorf("dev %g: measured deviation %g", dev, got)
		}
	}
}

func TestSimplifyMonotonicInTolerance(t *testing.T) {
	c := circleCurve(t, 0.05)
	coarse := len(Simplify(c, 0.05).Vertices)
	fine := len(Simplify(c, 1e-3).Vertices)
	if fine < coarse {
		t.Errorf("tighter tolerance produced fewer vertices: %d < %d", fine, coarse)
	}
}

func TestSimplifyVerticesOrdered(t *testing.T) {
	c := circleCurve(t, 0.05)
	pl := Simplify(c, 0.01)
	for i := 1; i < len(pl.Vertices); i++ {
		if pl.Vertices[i].T <= pl.Vertices[i-1].T {
			t.Fatalf("vertex parameters not increasing at %d: %g then %g",
				i, pl.Vertices[i-1].T, pl.Vertices[i].T)
		}
	}
	if pl.Vertices[0].T != c.T0() || pl.Vertices[len(pl.Vertices)-1].T != c.T1() {
		t.Error("simplified polyline does not span the full curve")
	}
}
