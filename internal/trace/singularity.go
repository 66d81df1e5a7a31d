package trace

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
)

// singHandler watches one direction of a line trace for field singularities,
// combining declared pole hints with numerical detection via the field
// magnitude cutoff. It decides whether the line ends at a pole or is allowed
// to pass through a dipole-like feature.
type singHandler struct {
	poles  []Pole
	rawF   func(geom.Point) geom.Vec2
	radius float64
	cutoff float64
	tol    float64
	sign   float64

	// remaining dipole pass budget, negative = unlimited
	budget int
	passed int
}

func newSingHandler(poles []Pole, rawF func(geom.Point) geom.Vec2, opts Options, sign float64) *singHandler {
	return &singHandler{
		poles:  poles,
		rawF:   rawF,
		radius: opts.PoleRadius,
		cutoff: opts.FieldCutoff,
		tol:    opts.errTol(),
		sign:   sign,
		budget: opts.PassPoles,
	}
}

func (sh *singHandler) poleRadius(pl *Pole) float64 {
	if pl.Radius > 0 {
		return pl.Radius
	}
	return sh.radius
}

// closestPoint returns the point of the pole geometry nearest to p.
func closestPoint(pl *Pole, p geom.Point) geom.Point {
	if pl.Kind != LinePole {
		return pl.P
	}
	seg := pl.P2.Sub(pl.P)
	len2 := seg.Hypot2()
	if len2 == 0 {
		return pl.P
	}
	u := p.Sub(pl.P).Dot(seg) / len2
	u = math.Max(0, math.Min(1, u))
	return pl.P.Lerp(pl.P2, u)
}

// nearest picks the pole the line is most likely heading for. Distances are
// weighted by the travel direction so a pole directly ahead wins over a
// nearer one behind.
func (sh *singHandler) nearest(p geom.Point, v geom.Vec2) (*Pole, geom.Point, float64) {
	var best *Pole
	var bestAt geom.Point
	bestScore := math.Inf(1)
	bestDist := math.Inf(1)
	for i := range sh.poles {
		pl := &sh.poles[i]
		at := closestPoint(pl, p)
		d := p.Distance(at)
		score := d
		if v != (geom.Vec2{}) {
			score *= 1.3 - geom.CosBetween(v, at.Sub(p))
		}
		if score < bestScore {
			best, bestAt, bestScore, bestDist = pl, at, score, d
		}
	}
	return best, bestAt, bestDist
}

// approach caps the next step when the line heads at a pole, so the step
// size shrinks with the remaining distance and no step can straddle the
// singularity.
func (sh *singHandler) approach(it *integrator, p geom.Point, v geom.Vec2) {
	pl, at, d := sh.nearest(p, v)
	if pl == nil || d == 0 {
		return
	}
	if geom.CosBetween(v, at.Sub(p)) > 0.9 {
		it.clampStep(math.Max(4*sh.tol, 0.5*d))
	}
}

// poleAction is the handler's verdict for one accepted step.
type poleAction int

const (
	poleNone poleAction = iota
	poleStop            // terminate at hit.at with StopSingularity
	polePass            // continue from hit.restart with a small step
)

type poleHit struct {
	action  poleAction
	at      geom.Point // where the line ends, or the seam of a pass
	restart geom.Point // position to resume from, polePass only
	step    float64    // restart step size, polePass only
}

// check classifies the situation after a step to p with direction v.
func (sh *singHandler) check(prev, p geom.Point, v geom.Vec2) poleHit {
	// numerical detection: the step landed in a diverging region
	if sh.rawF(p).Hypot() > sh.cutoff {
		at := sh.bisectCutoff(prev, p)
		if pl, poleAt, d := sh.nearest(at, geom.Vec2{}); pl != nil && pl.Kind == DipolePole && d < sh.poleRadius(pl) {
			return sh.dipoleHit(pl, poleAt, prev, v, math.Max(d, sh.tol))
		}
		return poleHit{action: poleStop, at: at}
	}

	pl, at, d := sh.nearest(p, v)
	if pl == nil || d >= sh.poleRadius(pl) {
		return poleHit{}
	}
	if geom.CosBetween(v, at.Sub(p)) <= 0.996 {
		// passing by, not heading in
		return poleHit{}
	}
	if pl.Kind == DipolePole {
		return sh.dipoleHit(pl, at, p, v, d)
	}
	return poleHit{action: poleStop, at: at}
}

// dipoleHit either consumes one pass and jumps the line to the mirror point
// just past the pole, or stops when the budget is spent.
func (sh *singHandler) dipoleHit(pl *Pole, at, p geom.Point, v geom.Vec2, d float64) poleHit {
	if sh.budget == 0 {
		return poleHit{action: poleStop, at: at}
	}
	if sh.budget > 0 {
		sh.budget--
	}
	sh.passed++

	m := pl.Moment.Normalize().Mul(sh.sign)
	if m == (geom.Vec2{}) {
		m = v
	}
	toPole := at.Sub(p).Normalize()
	restart := p.Translate(m.Mul(2 * m.Dot(toPole) * d))
	return poleHit{
		action:  polePass,
		at:      at,
		restart: restart,
		step:    math.Max(4*sh.tol, 0.5*d),
	}
}

// Passed reports how many dipole-like singularities this direction went
// through.
func (sh *singHandler) Passed() int {
	return sh.passed
}

// nearPole reports whether p lies within the handling radius of any pole,
// used to attribute step-size underflow to a singularity.
func (sh *singHandler) nearPole(p geom.Point) bool {
	pl, _, d := sh.nearest(p, geom.Vec2{})
	return pl != nil && d < 2*sh.poleRadius(pl)
}

// bisectCutoff locates the magnitude-cutoff crossing between an ordinary
// point and a diverging one.
func (sh *singHandler) bisectCutoff(inside, outside geom.Point) geom.Point {
	lo, hi := 0.0, 1.0
	for i := 0; i < 60 && (hi-lo)*inside.Distance(outside) > sh.tol; i++ {
		mid := 0.5 * (lo + hi)
		p := inside.Lerp(outside, mid)
		if sh.rawF(p).Hypot() > sh.cutoff {
			hi = mid
		} else {
			lo = mid
		}
	}
	return inside.Lerp(outside, lo)
}
