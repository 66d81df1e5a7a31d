package trace

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
)

// deviationSamples is the number of interior points measured against each
// candidate chord. Splitting re-samples both halves, so the effective
// density grows wherever the curve actually bends.
const deviationSamples = 24

// Simplify reduces a dense curve to the polyline with few vertices whose
// straight segments stay within maxDev of the curve everywhere. Intervals
// over tolerance are split at the point of maximum deviation; the worklist
// is explicit, so arbitrarily long or degenerate curves cannot exhaust the
// stack.
func Simplify(c *DenseCurve, maxDev float64) Polyline {
	if c == nil || c.Len() == 0 {
		return Polyline{}
	}
	first := c.At(0)
	if c.Len() == 1 || c.Length() == 0 {
		return Polyline{Vertices: []Vertex{{P: first.P, T: first.T}}}
	}
	if maxDev <= 0 {
		maxDev = 1e-12
	}
	// below this span an interval is accepted no matter what; it is as
	// small as the dense output is meaningful
	minSpan := c.Length() * 1e-9

	type interval struct {
		t0, t1 float64
		p0, p1 geom.Point
	}
	last := c.At(c.Len() - 1)
	verts := []Vertex{{P: first.P, T: first.T}}
	stack := []interval{{t0: first.T, t1: last.T, p0: first.P, p1: last.P}}

	for len(stack) > 0 {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tSplit, dev := chordDeviation(c, iv.t0, iv.t1, iv.p0, iv.p1)
		if dev <= maxDev || iv.t1-iv.t0 <= minSpan {
			verts = append(verts, Vertex{P: iv.p1, T: iv.t1})
			continue
		}
		mid, err := c.PointAt(tSplit)
		if err != nil {
			// cannot happen for an interior parameter; accept the chord
			verts = append(verts, Vertex{P: iv.p1, T: iv.t1})
			continue
		}
		// right half first so the left is processed next, keeping the
		// output vertices ordered
		stack = append(stack,
			interval{t0: tSplit, t1: iv.t1, p0: mid, p1: iv.p1},
			interval{t0: iv.t0, t1: tSplit, p0: iv.p0, p1: mid},
		)
	}
	return Polyline{Vertices: verts}
}

// chordDeviation samples the curve across [t0, t1] and returns the parameter
// of the worst point and its distance to the chord p0-p1.
func chordDeviation(c *DenseCurve, t0, t1 float64, p0, p1 geom.Point) (float64, float64) {
	worstT := 0.5 * (t0 + t1)
	worst := 0.0
	for i := 1; i <= deviationSamples; i++ {
		t := t0 + float64(i)*(t1-t0)/(deviationSamples+1)
		q, err := c.PointAt(t)
		if err != nil {
			continue
		}
		if d := segmentDistance(q, p0, p1); d > worst {
			worst, worstT = d, t
		}
	}
	return worstT, worst
}

// segmentDistance returns the distance from q to the nearest point of the
// segment a-b.
func segmentDistance(q, a, b geom.Point) float64 {
	ab := b.Sub(a)
	len2 := ab.Hypot2()
	if len2 == 0 {
		return q.Distance(a)
	}
	u := q.Sub(a).Dot(ab) / len2
	u = math.Max(0, math.Min(1, u))
	return q.Distance(a.Lerp(b, u))
}

// MaxDeviation measures the largest distance between a polyline and the
// curve it approximates, sampled densely. Useful for validating simplifier
// output against its tolerance.
func MaxDeviation(c *DenseCurve, pl Polyline, samplesPerSeg int) float64 {
	worst := 0.0
	for i := 1; i < len(pl.Vertices); i++ {
		v0, v1 := pl.Vertices[i-1], pl.Vertices[i]
		for j := 0; j <= samplesPerSeg; j++ {
			t := v0.T + float64(j)*(v1.T-v0.T)/float64(samplesPerSeg)
			q, err := c.PointAt(t)
			if err != nil {
				continue
			}
			if d := segmentDistance(q, v0.P, v1.P); d > worst {
				worst = d
			}
		}
	}
	return worst
}
