package trace

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
)

// loopDetector terminates a line that returns to its own start, snapping the
// final sample onto the start so the rendered polyline closes without a gap.
type loopDetector struct {
	start    geom.Point
	closeTol float64
	// alongTol bounds the residual distance along the travel direction;
	// much tighter than the perpendicular tolerance.
	alongTol float64
	minLen   float64
	minSkip  int
}

func newLoopDetector(start geom.Point, opts Options) *loopDetector {
	return &loopDetector{
		start:    start,
		closeTol: opts.CloseTol,
		alongTol: 20 * opts.errTol(),
		minLen:   defaultLoopMinLen,
		minSkip:  defaultLoopSkip,
	}
}

// approach slows the integrator down when the line heads back at its start,
// so a step lands close enough for the closure test instead of flying past.
func (ld *loopDetector) approach(it *integrator, c *DenseCurve, p geom.Point, v geom.Vec2) {
	if c.Len() <= ld.minSkip || c.Length() <= ld.minLen {
		return
	}
	toStart := ld.start.Sub(p)
	d := toStart.Hypot()
	if d == 0 || (d >= 0.1 && it.h < d) {
		return
	}
	cv := geom.CosBetween(v, toStart)
	sv := geom.SinBetween(v, toStart)
	if it.h > 0.99*d && (cv > 0.9 || (cv > 0 && d*math.Abs(sv) < ld.closeTol)) {
		it.clampStep(math.Max(4*it.tol, d*cv*math.Max(0.9, 1-0.1*d*cv)))
	}
}

// closed reports whether the newest sample closes the loop. The caller snaps
// the final sample onto the start on a true result.
func (ld *loopDetector) closed(c *DenseCurve, p geom.Point, v geom.Vec2) bool {
	if c.Len() <= ld.minSkip || c.Length() <= ld.minLen {
		return false
	}
	toStart := ld.start.Sub(p)
	d := toStart.Hypot()
	if d >= math.Max(ld.closeTol, 5e-4) {
		return false
	}
	if v == (geom.Vec2{}) {
		return true
	}
	cv := geom.CosBetween(v, toStart)
	sv := geom.SinBetween(v, toStart)
	return d*math.Abs(sv) < ld.closeTol && d*math.Abs(cv) < math.Max(ld.alongTol, ld.closeTol)
}
