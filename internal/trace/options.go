package trace

import (
	"fmt"
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
)

const (
	DefaultDigits       = 3.8
	DefaultMaxSteps     = 1000
	DefaultMaxLength    = 300.0
	DefaultMaxStep      = 1.0
	DefaultCloseTol     = 5e-3
	DefaultPoleRadius   = 0.01
	DefaultFieldCutoff  = 1e12
	defaultLoopMinLen   = 5e-3
	defaultLoopSkip     = 4
	underflowRetryLimit = 8
)

// Options is the configuration surface of a line trace. The zero value of
// every field means "use the default"; Trace never mutates the Options it is
// given.
type Options struct {
	// Digits controls the integration error tolerance and output rounding
	// as decimal digits of precision.
	Digits float64

	// MaxSteps is the hard ceiling on integration steps per direction.
	MaxSteps int

	// MaxLength is the hard ceiling on traced arc length per direction.
	MaxLength float64

	// MaxStep bounds the adaptive step size from above.
	MaxStep float64

	// PassPoles is the number of dipole-like singularities the line may
	// pass through. Negative means unlimited.
	PassPoles int

	// CloseTol is the distance under which the line is considered to have
	// returned to its start.
	CloseTol float64

	// PoleRadius is the proximity radius around a singularity inside which
	// the handler takes over, for poles that do not carry their own radius.
	PoleRadius float64

	// FieldCutoff is the field magnitude above which a point is treated as
	// singular. This is a tuned heuristic, deliberately configurable.
	FieldCutoff float64

	// Bounds evaluates positive outside the allowed region; the line is
	// clipped at the crossing.
	Bounds Predicate

	// StopForward and StopBackward force the respective direction to stop
	// where they evaluate positive.
	StopForward  Predicate
	StopBackward Predicate

	Directions Direction

	// StartV is an optional explicit start direction. The zero vector
	// means unset; then F(start) establishes the direction.
	StartV geom.Vec2

	// StartStep is an optional first displacement for lines that begin on
	// a dipole, where F(start) is meaningless. The zero vector means unset.
	StartStep geom.Vec2
}

// withDefaults returns a copy with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Digits == 0 {
		o.Digits = DefaultDigits
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.MaxLength == 0 {
		o.MaxLength = DefaultMaxLength
	}
	if o.MaxStep == 0 {
		o.MaxStep = DefaultMaxStep
	}
	if o.CloseTol == 0 {
		o.CloseTol = DefaultCloseTol
	}
	if o.PoleRadius == 0 {
		o.PoleRadius = DefaultPoleRadius
	}
	if o.FieldCutoff == 0 {
		o.FieldCutoff = DefaultFieldCutoff
	}
	return o
}

func (o Options) validate() error {
	if o.Digits <= 0 {
		return fmt.Errorf("%w: digits must be positive, got %g", ErrBadOptions, o.Digits)
	}
	if o.MaxSteps < 1 {
		return fmt.Errorf("%w: max steps must be at least 1, got %d", ErrBadOptions, o.MaxSteps)
	}
	if o.MaxLength <= 0 {
		return fmt.Errorf("%w: max length must be positive, got %g", ErrBadOptions, o.MaxLength)
	}
	if o.MaxStep <= 0 {
		return fmt.Errorf("%w: max step must be positive, got %g", ErrBadOptions, o.MaxStep)
	}
	if o.CloseTol <= 0 {
		return fmt.Errorf("%w: close tolerance must be positive, got %g", ErrBadOptions, o.CloseTol)
	}
	if o.Directions < Forward || o.Directions > Both {
		return fmt.Errorf("%w: unknown directions value %d", ErrBadOptions, int(o.Directions))
	}
	return nil
}

// errTol derives the local integration error tolerance from the digits
// setting. At the default 3.8 digits this comes out at the tuned 4e-8.
func (o Options) errTol() float64 {
	return 2.5 * math.Pow(10, -o.Digits-4)
}
