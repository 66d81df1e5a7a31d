package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2)
	q := Pt(4, 6)

	if diff := cmp.Diff(V(3, 4), q.Sub(p)); diff != "" {
		t.Errorf("Sub mismatch (-want +got):\n%s", diff)
	}
	if got := p.Distance(q); got != 5 {
		t.Errorf("Distance = %g, want 5", got)
	}
	if got := p.DistanceSquared(q); got != 25 {
		t.Errorf("DistanceSquared = %g, want 25", got)
	}
	if diff := cmp.Diff(Pt(2.5, 4), p.Midpoint(q)); diff != "" {
		t.Errorf("Midpoint mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Pt(4, 6), p.Translate(V(3, 4))); diff != "" {
		t.Errorf("Translate mismatch (-want +got):\n%s", diff)
	}
}

func TestLerp(t *testing.T) {
	p := Pt(0, 0)
	q := Pt(2, 4)
	if diff := cmp.Diff(Pt(1, 2), p.Lerp(q, 0.5)); diff != "" {
		t.Errorf("Lerp mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(q, p.Lerp(q, 1)); diff != "" {
		t.Errorf("Lerp at 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestVecProducts(t *testing.T) {
	a := V(1, 0)
	b := V(0, 2)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %g, want 0", got)
	}
	if got := a.Cross(b); got != 2 {
		t.Errorf("Cross = %g, want 2", got)
	}
	if got := b.Hypot(); got != 2 {
		t.Errorf("Hypot = %g, want 2", got)
	}
	if got := b.Hypot2(); got != 4 {
		t.Errorf("Hypot2 = %g, want 4", got)
	}
}

func TestNormalize(t *testing.T) {
	v := V(3, 4).Normalize()
	if math.Abs(v.Hypot()-1) > 1e-15 {
		t.Errorf("normalized magnitude = %g, want 1", v.Hypot())
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestCosSinBetween(t *testing.T) {
	if got := CosBetween(V(1, 0), V(0, 1)); math.Abs(got) > 1e-15 {
		t.Errorf("CosBetween perpendicular = %g, want 0", got)
	}
	if got := SinBetween(V(1, 0), V(0, 1)); math.Abs(got-1) > 1e-15 {
		t.Errorf("SinBetween perpendicular = %g, want 1", got)
	}
	if got := CosBetween(V(2, 0), V(5, 0)); math.Abs(got-1) > 1e-15 {
		t.Errorf("CosBetween parallel = %g, want 1", got)
	}
	if got := CosBetween(Vec2{}, V(1, 0)); got != 0 {
		t.Errorf("CosBetween with zero vector = %g, want 0", got)
	}
}

func TestAngleDiff(t *testing.T) {
	cases := []struct{ a1, a0, want float64 }{
		{0.5, 0.25, 0.25},
		{-3, 3, 2*math.Pi - 6},
		{3, -3, 6 - 2*math.Pi},
	}
	for _, c := range cases {
		if got := AngleDiff(c.a1, c.a0); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("AngleDiff(%g, %g) = %g, want %g", c.a1, c.a0, got, c.want)
		}
	}
}
