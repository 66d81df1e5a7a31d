package trace

import "errors"

// Domain errors for line construction. Integration-time anomalies never
// surface as errors; they terminate the direction with a StopCondition.
var (
	// ErrAmbiguousStart indicates a zero field at the start point and no
	// explicit start velocity, so no line direction can be established.
	ErrAmbiguousStart = errors.New("trace: ambiguous start direction (zero field and no start velocity)")

	// ErrStepUnderflow indicates the adaptive step size collapsed with no
	// singularity nearby to explain it. The field is ill-defined around
	// the current point.
	ErrStepUnderflow = errors.New("trace: step size underflow")

	// ErrOutOfRange indicates a dense-curve evaluation outside the curve's
	// parameter range.
	ErrOutOfRange = errors.New("trace: parameter outside curve range")

	// ErrBadOptions indicates structurally invalid trace options.
	ErrBadOptions = errors.New("trace: invalid options")
)
