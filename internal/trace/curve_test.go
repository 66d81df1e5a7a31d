package trace

import (
	"errors"
	"math"
	"testing"

	"github.com/anzel/fieldtrace/internal/geom"
)

func lineCurve(t *testing.T, n int) *DenseCurve {
	t.Helper()
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{T: float64(i), P: geom.Pt(float64(i), 0), V: geom.V(1, 0), H: 1}
	}
	c, err := NewDenseCurve(samples)
	if err != nil {
		t.Fatalf("NewDenseCurve: %v", err)
	}
	return c
}

// circleCurve samples the unit circle at arc-length spacing dt.
func circleCurve(t *testing.T, dt float64) *DenseCurve {
	t.Helper()
	var samples []Sample
	for s := 0.0; s <= 2*math.Pi+1e-9; s += dt {
		samples = append(samples, Sample{
			T: s,
			P: geom.Pt(math.Cos(s), math.Sin(s)),
			V: geom.V(-math.Sin(s), math.Cos(s)),
			H: dt,
		})
	}
	c, err := NewDenseCurve(samples)
	if err != nil {
		t.Fatalf("NewDenseCurve: %v", err)
	}
	return c
}

func TestDenseCurveRoundTrip(t *testing.T) {
	c := circleCurve(t, 0.2)
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		p, err := c.PointAt(s.T)
		if err != nil {
			t.Fatalf("PointAt(%g): %v", s.T, err)
		}
		if p.Distance(s.P) > 1e-12 {
			t.Errorf("PointAt(%g) = %v, sample at %v", s.T, p, s.P)
		}
	}
}

func TestDenseCurveInterpolation(t *testing.T) {
	c := lineCurve(t, 5)
	p, err := c.PointAt(2.5)
	if err != nil {
		t.Fatal(err)
	}
	if p.Distance(geom.Pt(2.5, 0)) > 1e-12 {
		t.Errorf("PointAt(2.5) = %v, want (2.5, 0)", p)
	}

	// interior reconstruction of a circle should be far better than the
	// sample spacing
	cc := circleCurve(t, 0.2)
	for _, s := range []float64{0.1, 1.05, 3.33, 6.0} {
		p, err := cc.PointAt(s)
		if err != nil {
			t.Fatal(err)
		}
		want := geom.Pt(math.Cos(s), math.Sin(s))
		if p.Distance(want) > 1e-4 {
			t.Errorf("PointAt(%g) off circle by %g", s, p.Distance(want))
		}
	}
}

func TestDenseCurveTangent(t *testing.T) {
	c := lineCurve(t, 4)
	v, err := c.TangentAt(1.5)
	if err != nil {
		t.Fatal(err)
	}
	if v.Sub(geom.V(1, 0)).Hypot() > 1e-12 {
		t.Errorf("TangentAt(1.5) = %v, want (1, 0)", v)
	}

	cc := circleCurve(t, 0.2)
	s := 2.7
	v, err = cc.TangentAt(s)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.V(-math.Sin(s), math.Cos(s))
	if v.Sub(want).Hypot() > 1e-3 {
		t.Errorf("TangentAt(%g) = %v, want %v", s, v, want)
	}
}

func TestDenseCurveOutOfRange(t *testing.T) {
	c := lineCurve(t, 3)
	for _, bad := range []float64{-0.1, 2.0001, math.Inf(1)} {
		if _, err := c.PointAt(bad); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("PointAt(%g) err = %v, want ErrOutOfRange", bad, err)
		}
	}
	if _, err := c.TangentAt(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TangentAt(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestDenseCurveOrdering(t *testing.T) {
	_, err := NewDenseCurve([]Sample{
		{T: 0, P: geom.Pt(0, 0)},
		{T: 1, P: geom.Pt(1, 0)},
		{T: 1, P: geom.Pt(2, 0)},
	})
	if err == nil {
		t.Fatal("expected error for non-increasing parameters")
	}
}

func TestDenseCurveSpans(t *testing.T) {
	c := lineCurve(t, 4)
	if c.T0() != 0 || c.T1() != 3 {
		t.Errorf("span = [%g, %g], want [0, 3]", c.T0(), c.T1())
	}
	if c.Length() != 3 {
		t.Errorf("Length = %g, want 3", c.Length())
	}

	empty := &DenseCurve{}
	if empty.Length() != 0 || empty.Len() != 0 {
		t.Error("empty curve has nonzero extent")
	}
}
