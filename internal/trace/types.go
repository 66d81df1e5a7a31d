// Package trace integrates field lines of a 2D vector field and reduces the
// traced curves to compact polylines. A FieldLine advances step by step with
// an embedded Runge-Kutta scheme, watches for singularities, loop closure and
// user-supplied bounds, accumulates accepted steps into a DenseCurve, and
// hands the finished curve to Simplify for output geometry.
package trace

import "github.com/anzel/fieldtrace/internal/geom"

// Evaluator is the field capability consumed by the tracer. Implementations
// must be read-only: the same Evaluator is queried concurrently by
// independent line traces.
type Evaluator interface {
	// F returns the field vector at p.
	F(p geom.Point) geom.Vec2

	// Poles enumerates known singular geometries of the field. The tracer
	// uses them as hints in addition to purely numerical detection.
	Poles() []Pole
}

// PotentialEvaluator is optionally implemented by fields with a scalar
// potential.
type PotentialEvaluator interface {
	Potential(p geom.Point) (float64, bool)
}

type PoleKind int

const (
	// PointPole is a simple pole; integration terminates there.
	PointPole PoleKind = iota
	// DipolePole is a dipole-like feature integration may pass through.
	DipolePole
	// LinePole is a singular line segment from P to P2.
	LinePole
)

func (k PoleKind) String() string {
	switch k {
	case PointPole:
		return "point"
	case DipolePole:
		return "dipole"
	case LinePole:
		return "line"
	}
	return "unknown"
}

// Pole is a known singular point or line of the field.
type Pole struct {
	P    geom.Point
	P2   geom.Point // second endpoint, LinePole only
	Kind PoleKind
	// Moment is the dipole axis for DipolePole, zero otherwise.
	Moment geom.Vec2
	// Radius is the tolerance radius around the pole. Zero means the
	// tracer's configured default applies.
	Radius float64
}

// Sample is one accepted integration step. Samples are immutable once
// appended to a DenseCurve.
type Sample struct {
	T float64    // distance-like parameter, strictly increasing along the line
	P geom.Point // position
	V geom.Vec2  // unit tangent in the direction of travel
	H float64    // step size used to reach this sample
}

// StopCondition reports why integration of one direction ended.
type StopCondition int

const (
	StopNone StopCondition = iota // direction not requested
	StopBoundary
	StopStepLimit
	StopLengthLimit
	StopSingularity
	StopLoopClosed
	StopPredicate
)

func (s StopCondition) String() string {
	switch s {
	case StopNone:
		return "none"
	case StopBoundary:
		return "boundary exceeded"
	case StopStepLimit:
		return "step limit exceeded"
	case StopLengthLimit:
		return "length limit exceeded"
	case StopSingularity:
		return "singularity blocked"
	case StopLoopClosed:
		return "loop closed"
	case StopPredicate:
		return "stop predicate"
	}
	return "unknown"
}

type Direction int

const (
	Forward Direction = iota
	Backward
	Both
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Both:
		return "both"
	}
	return "unknown"
}

// Predicate is an opaque boolean-valued oracle over positions: positive
// means outside the allowed region (bounds) or "force stop" (stop
// predicates).
type Predicate func(p geom.Point) float64

// Vertex is one polyline vertex together with the curve parameter it was
// taken at, so tangents can be re-derived later.
type Vertex struct {
	P geom.Point
	T float64
}

// Polyline is the simplified straight-segment rendition of a DenseCurve.
type Polyline struct {
	Vertices []Vertex
	// Closed reports that the originating line closed onto its start.
	Closed bool
}
