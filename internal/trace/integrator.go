package trace

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
)

// integrator advances a streamline through a normalized direction field with
// a fourth-order Runge-Kutta scheme. The error estimate compares a full step
// against two half steps; the accepted point is the Richardson combination
// of the two, giving fifth-order local accuracy. Each line trace owns its
// integrator, so concurrent traces share no scratch state.
type integrator struct {
	f       func(geom.Point) geom.Vec2 // unit direction field, sign folded in
	tol     float64
	maxStep float64

	h    float64
	hOld float64
	// consecutive rejections with the step pinned at the floor
	starved int
}

const (
	stepSafety   = 0.9
	stepMinScale = 0.5
	stepMaxScale = 2.0
	// velocity spread above which the field direction is changing too fast
	// across the step for the error estimate to be trusted at all
	spreadLimit = 0.1
)

func newIntegrator(f func(geom.Point) geom.Vec2, tol, maxStep float64) *integrator {
	h := (math.Sqrt(5) - 1) / 10
	if h > maxStep {
		h = maxStep
	}
	return &integrator{f: f, tol: tol, maxStep: maxStep, h: h, hOld: h}
}

// rkStep takes one classic RK4 step of size h from p with entry direction v.
// The returned spread is the largest direction difference among the four
// stage evaluations, a proxy for curvature blow-up inside the step.
func (it *integrator) rkStep(p geom.Point, v geom.Vec2, h float64) (geom.Point, float64) {
	k1 := v.Mul(h)
	v2 := it.f(p.Translate(k1.Mul(0.5)))
	k2 := v2.Mul(h)
	v3 := it.f(p.Translate(k2.Mul(0.5)))
	k3 := v3.Mul(h)
	v4 := it.f(p.Translate(k3))
	k4 := v4.Mul(h)

	p1 := p.Translate(k1.Add(k2.Add(k3).Mul(2)).Add(k4).Mul(1.0 / 6.0))

	spread := math.Max(v.Sub(v2).Hypot(), v.Sub(v3).Hypot())
	spread = math.Max(spread, v.Sub(v4).Hypot())
	spread = math.Max(spread, v2.Sub(v3).Hypot())
	spread = math.Max(spread, v3.Sub(v4).Hypot())
	return p1, spread
}

type stepResult struct {
	ok        bool // step accepted
	p         geom.Point
	h         float64 // step size that produced p
	underflow bool    // step size pinned at the floor with no progress
}

// step attempts one accepted step from p with unit direction v, adapting the
// step size until the doubling estimate meets the tolerance or the size
// bounds out.
func (it *integrator) step(p geom.Point, v geom.Vec2) stepResult {
	h := it.h

	p11, e11 := it.rkStep(p, v, h)
	p21, e21 := it.rkStep(p, v, h/2)
	p22, e22 := it.rkStep(p21, it.f(p21), h/2)
	spread := math.Max(e11, math.Max(e21, e22))
	diff := p22.Distance(p11)

	res := stepResult{h: h}
	if diff < 2*it.tol && spread < spreadLimit {
		// Richardson extrapolation of the doubled step.
		res.ok = true
		res.p = geom.Pt((16*p22.X-p11.X)/15, (16*p22.Y-p11.Y)/15)
		it.starved = 0
	} else if h <= it.tol {
		it.starved++
		if it.starved >= underflowRetryLimit {
			res.underflow = true
		}
	}

	// Adapt the step for the next attempt, shrinking and growing by bounded
	// factors only.
	switch {
	case spread >= spreadLimit:
		h *= stepMinScale
	case diff > 0:
		factor := stepSafety * math.Pow(it.tol/diff, 0.25)
		var hNew float64
		if h < it.hOld {
			hNew = math.Min((h+it.hOld)/2, h*factor)
		} else {
			hNew = h * math.Min(stepMaxScale, math.Max(stepMinScale, factor))
		}
		it.hOld = h
		h = hNew
	default:
		it.hOld = h
		h *= stepMaxScale
	}
	if h < it.tol {
		h = it.tol
	}
	if h > it.maxStep {
		h = it.maxStep
	}
	it.h = h
	return res
}

// clampStep caps the next step size, used when some detector wants the line
// to slow down. The cap never raises the step.
func (it *integrator) clampStep(h float64) {
	if h < it.tol {
		h = it.tol
	}
	if h < it.h {
		it.h = h
	}
}

// setStep forces the next step size, used when restarting past a pole.
func (it *integrator) setStep(h float64) {
	if h < it.tol {
		h = it.tol
	}
	if h > it.maxStep {
		h = it.maxStep
	}
	it.h = h
	it.hOld = h
	it.starved = 0
}
