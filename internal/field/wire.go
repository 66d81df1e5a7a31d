package field

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Wire is an infinite straight current-carrying wire perpendicular to the
// image plane at (X, Y), current I out of the plane. Its field lines are
// concentric circles, so the wire position is not reported as a pole: lines
// orbit it and close on themselves instead of running into it.
type Wire struct {
	X, Y float64
	I    float64
}

func (w Wire) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(w.X, w.Y))
	rr := r.Hypot2()
	if rr == 0 {
		return geom.Vec2{}
	}
	pre := w.I / (2 * math.Pi * rr)
	return geom.V(-r.Y*pre, r.X*pre)
}

func (w Wire) PotentialAt(p geom.Point) (float64, bool) {
	// a circulating field has no scalar potential
	return 0, false
}

func (w Wire) Poles() []trace.Pole {
	return nil
}

// ChargedWire is a straight wire at (X, Y) perpendicular to the image plane
// with charge Q per unit length.
type ChargedWire struct {
	X, Y float64
	Q    float64
}

func (w ChargedWire) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(w.X, w.Y))
	rr := r.Hypot2()
	if rr == 0 {
		return geom.Vec2{}
	}
	return r.Mul(w.Q / (2 * math.Pi * rr))
}

func (w ChargedWire) PotentialAt(p geom.Point) (float64, bool) {
	d := p.Distance(geom.Pt(w.X, w.Y))
	return -w.Q * math.Log(math.Max(d, 1e-18)) / (2 * math.Pi), true
}

func (w ChargedWire) Poles() []trace.Pole {
	return []trace.Pole{{P: geom.Pt(w.X, w.Y), Kind: trace.PointPole}}
}
