package trace

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/anzel/fieldtrace/internal/geom"
)

// RectBounds returns a boundary predicate for the axis-aligned rectangle
// spanned by (x0, y0) and (x1, y1): negative inside, positive outside, with
// magnitude growing with the distance to the region.
func RectBounds(x0, y0, x1, y1 float64) Predicate {
	return func(p geom.Point) float64 {
		if p.X < x0 || p.Y < y0 || p.X > x1 || p.Y > y1 {
			return math.Sqrt((p.X-x0)*(p.X-x0) + (p.Y-y0)*(p.Y-y0) +
				(x1-p.X)*(x1-p.X) + (y1-p.Y)*(y1-p.Y))
		}
		return math.Max(math.Max(x0-p.X, y0-p.Y), math.Max(p.X-x1, p.Y-y1))
	}
}

// PolygonBounds returns a boundary predicate that is negative inside the
// polygon (even-odd rule over its contours) and positive outside.
func PolygonBounds(poly polyclip.Polygon) Predicate {
	return func(p geom.Point) float64 {
		pt := polyclip.Point{X: p.X, Y: p.Y}
		inside := false
		for _, c := range poly {
			if c.Contains(pt) {
				inside = !inside
			}
		}
		if inside {
			return -1
		}
		return 1
	}
}

// Union combines predicates; the result is positive where any of them is.
func Union(preds ...Predicate) Predicate {
	return func(p geom.Point) float64 {
		worst := math.Inf(-1)
		for _, f := range preds {
			if f == nil {
				continue
			}
			if s := f(p); s > worst {
				worst = s
			}
		}
		if math.IsInf(worst, -1) {
			return -1
		}
		return worst
	}
}

// bisectCrossing refines the boundary crossing between an interior point
// (pred <= 0) and an exterior one (pred > 0) down to tol.
func bisectCrossing(pred Predicate, inside, outside geom.Point, tol float64) geom.Point {
	lo, hi := 0.0, 1.0
	span := inside.Distance(outside)
	for i := 0; i < 60 && (hi-lo)*span > tol; i++ {
		mid := 0.5 * (lo + hi)
		if pred(inside.Lerp(outside, mid)) > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return inside.Lerp(outside, 0.5*(lo+hi))
}

// boundsEval applies the user's boundary and stop predicates to each newly
// accepted step.
type boundsEval struct {
	bounds Predicate
	stop   Predicate
	tol    float64
}

type clipResult struct {
	stop StopCondition // StopNone if the step is fine
	at   geom.Point    // refined final position when stopping
}

// check inspects the step from prev to p. On a crossing, the returned
// position is the refined crossing point, which becomes the line's final
// sample.
func (be *boundsEval) check(prev, p geom.Point) clipResult {
	if be.stop != nil && be.stop(p) > 0 {
		// prev already beyond the predicate means the line never was
		// inside; it ends where it stands instead of a step further out
		at := prev
		if be.stop(prev) <= 0 {
			at = bisectCrossing(be.stop, prev, p, be.tol)
		}
		return clipResult{stop: StopPredicate, at: at}
	}
	if be.bounds != nil && be.bounds(p) > 0 {
		at := prev
		if be.bounds(prev) <= 0 {
			at = bisectCrossing(be.bounds, prev, p, be.tol)
		}
		return clipResult{stop: StopBoundary, at: at}
	}
	return clipResult{}
}
