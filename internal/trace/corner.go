package trace

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
)

// Corner handling for kinks of the direction field away from any declared
// pole. A field null, such as the saddle between two equal charges, flips
// the direction across a point the adaptive step cannot resolve; once the
// step has collapsed below the lookahead scale, the curvature change rate just
// ahead is measured, the corner is located by bisection, and the line either
// turns through it with second-order formulas or ends there when the
// direction keeps flipping behind it.
const (
	// step size under which corner detection engages
	cornerStepScale = 0.01
	// curvature change rate that counts as a corner
	cornerLimit = 1e4
)

// cornerNode is one node the corner handler wants appended to the curve.
type cornerNode struct {
	p geom.Point
	v geom.Vec2
	h float64
}

type cornerResult struct {
	found bool
	// end reports that the direction flips again right behind the corner,
	// so the line has nowhere smooth to go
	end   bool
	nodes []cornerNode
}

// detectCorner measures the curvature change rate over a short lookahead from
// p with unit direction v. f must be the unit direction field of the trace.
func detectCorner(f func(geom.Point) geom.Vec2, p geom.Point, v geom.Vec2, h, tol float64) cornerResult {
	hh := 3 * h
	v0 := f(p.Translate(v.Mul(hh / 2)))
	v1 := f(p.Translate(v.Mul(hh)))
	a0 := geom.AngleDiff(v0.Angle(), v.Angle())
	a1 := geom.AngleDiff(v1.Angle(), v0.Angle())
	if adif := geom.AngleDiff(a1, a0); math.Abs(adif)/(hh*hh) <= cornerLimit {
		return cornerResult{}
	}

	// the half interval with the stronger bend holds the corner; vm bisects
	// the directions across it
	var lo, hi float64
	var vm geom.Vec2
	if math.Abs(a0) >= math.Abs(a1) {
		lo, hi = 0, hh/2
		vm = v.Add(v0).Normalize()
	} else {
		lo, hi = hh/2, hh
		vm = v0.Add(v1).Normalize()
	}
	if vm == (geom.Vec2{}) {
		// head-on reversal, any perpendicular serves as the bisector
		vm = geom.V(v0.Y, -v0.X)
	}
	hc := bisectZero(func(t float64) float64 {
		return geom.SinBetween(f(p.Translate(v.Mul(t))), vm)
	}, lo, hi, tol)
	v2 := f(p.Translate(v.Mul(hc / 2)))
	if geom.SinBetween(f(p), vm)*geom.SinBetween(f(p.Translate(v2.Mul(2*hc))), vm) <= 0 {
		hc = bisectZero(func(t float64) float64 {
			return geom.SinBetween(f(p.Translate(v2.Mul(t))), vm)
		}, 0, 2*hc, tol)
	}

	// step onto the corner with a midpoint formula instead of Runge-Kutta
	pc := p.Translate(v2.Mul(hc))
	vc := v2.Mul(2).Sub(v).Normalize()
	res := cornerResult{found: true, nodes: []cornerNode{{p: pc, v: vc, h: hc}}}

	// sample the area right behind the corner with three short steps; lengths
	// are chosen so a second corner would be detected
	p0 := pc.Translate(f(pc.Translate(v1.Mul(0.2 * hh))).Mul(0.2 * hh))
	va0 := f(p0)
	p1 := p0.Translate(va0.Mul(0.4 * hh))
	va1 := f(p1)
	p2 := p1.Translate(va1.Mul(0.4 * hh))
	va2 := f(p2)
	b0 := geom.AngleDiff(va1.Angle(), va0.Angle())
	b1 := geom.AngleDiff(va2.Angle(), va1.Angle())
	bdif := geom.AngleDiff(b1, b0)
	if math.Abs(bdif)/(0.8*hh*0.8*hh) > cornerLimit || math.Abs(b0)+math.Abs(b1) >= math.Pi/2 {
		res.end = true
		return res
	}

	// clean pass-through: one more second-order step to get clear of the
	// corner before Runge-Kutta resumes
	vn := va1.Mul(1.25).Sub(va2.Mul(0.25)).Normalize()
	pn := pc.Translate(vn.Mul(hh))
	res.nodes = append(res.nodes, cornerNode{p: pn, v: f(pn), h: hh})
	return res
}

// bisectZero finds a sign change of fn inside [lo, hi] down to tol; when the
// interval carries no sign change it settles for the midpoint.
func bisectZero(fn func(float64) float64, lo, hi, tol float64) float64 {
	flo := fn(lo)
	if flo*fn(hi) > 0 {
		return 0.5 * (lo + hi)
	}
	for i := 0; i < 60 && hi-lo > tol; i++ {
		mid := 0.5 * (lo + hi)
		if flo*fn(mid) <= 0 {
			hi = mid
		} else {
			lo = mid
			flo = fn(lo)
		}
	}
	return 0.5 * (lo + hi)
}
