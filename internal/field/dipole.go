package field

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Dipole is the in-plane cross-section of a pointlike electric or magnetic
// dipole at (X, Y) with moment (Px, Py).
type Dipole struct {
	X, Y   float64
	Px, Py float64
}

func (dp Dipole) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(dp.X, dp.Y))
	d := r.Hypot()
	if d == 0 {
		// unphysical sign at the pole lets the line pass through
		return geom.V(dp.Px, dp.Py)
	}
	rp := r.X*dp.Px + r.Y*dp.Py
	pre := 0.25 / (math.Pi * d * d * d * d * d)
	return geom.V(
		pre*(3*rp*r.X-d*d*dp.Px),
		pre*(3*rp*r.Y-d*d*dp.Py),
	)
}

func (dp Dipole) PotentialAt(p geom.Point) (float64, bool) {
	r := p.Sub(geom.Pt(dp.X, dp.Y))
	d := r.Hypot()
	if d == 0 {
		return 0, true
	}
	return (r.X*dp.Px + r.Y*dp.Py) / (4 * math.Pi * d * d * d), true
}

func (dp Dipole) Poles() []trace.Pole {
	return []trace.Pole{{
		P:      geom.Pt(dp.X, dp.Y),
		Kind:   trace.DipolePole,
		Moment: geom.V(dp.Px, dp.Py),
	}}
}

// Dipole2D is a two-dimensional dipole: two infinitesimally close infinite
// lines of opposite charge perpendicular to the image plane.
type Dipole2D struct {
	X, Y   float64
	Px, Py float64
}

func (dp Dipole2D) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(dp.X, dp.Y))
	rr := r.Hypot2()
	if rr == 0 {
		return geom.V(dp.Px, dp.Py)
	}
	rp := r.X*dp.Px + r.Y*dp.Py
	pre := 0.5 / (math.Pi * rr * rr)
	return geom.V(
		pre*(2*rp*r.X-rr*dp.Px),
		pre*(2*rp*r.Y-rr*dp.Py),
	)
}

func (dp Dipole2D) PotentialAt(p geom.Point) (float64, bool) {
	r := p.Sub(geom.Pt(dp.X, dp.Y))
	rr := r.Hypot2()
	if rr == 0 {
		return 0, true
	}
	return (r.X*dp.Px + r.Y*dp.Py) / (2 * math.Pi * rr), true
}

func (dp Dipole2D) Poles() []trace.Pole {
	return []trace.Pole{{
		P:      geom.Pt(dp.X, dp.Y),
		Kind:   trace.DipolePole,
		Moment: geom.V(dp.Px, dp.Py),
	}}
}
