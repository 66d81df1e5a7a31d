package trace

import (
	"fmt"
	"sort"

	"github.com/anzel/fieldtrace/internal/geom"
)

// DenseCurve is the accumulated sequence of accepted integration steps,
// evaluable at any interior parameter without re-integration. Samples are
// append-only and their parameters strictly increase.
type DenseCurve struct {
	samples []Sample
}

// NewDenseCurve builds a curve from pre-computed samples, enforcing the
// parameter ordering invariant. Mostly useful for tests and for consumers
// that resample externally produced data.
func NewDenseCurve(samples []Sample) (*DenseCurve, error) {
	c := &DenseCurve{}
	for _, s := range samples {
		if err := c.push(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *DenseCurve) push(s Sample) error {
	if n := len(c.samples); n > 0 && s.T <= c.samples[n-1].T {
		return fmt.Errorf("%w: sample parameter %g not after %g", ErrBadOptions, s.T, c.samples[n-1].T)
	}
	c.samples = append(c.samples, s)
	return nil
}

// append is the integration-side entry point; ordering violations here are
// programming errors, not input errors.
func (c *DenseCurve) append(s Sample) {
	if err := c.push(s); err != nil {
		panic(err)
	}
}

// dropLast removes the most recent sample.
func (c *DenseCurve) dropLast() {
	if n := len(c.samples); n > 0 {
		c.samples = c.samples[:n-1]
	}
}

// replaceLast swaps the most recent sample, keeping ordering intact.
func (c *DenseCurve) replaceLast(s Sample) {
	n := len(c.samples)
	c.samples = c.samples[:n-1]
	c.append(s)
}

func (c *DenseCurve) Len() int {
	return len(c.samples)
}

func (c *DenseCurve) At(i int) Sample {
	return c.samples[i]
}

// T0 returns the first sample's parameter.
func (c *DenseCurve) T0() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return c.samples[0].T
}

// T1 returns the last sample's parameter.
func (c *DenseCurve) T1() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return c.samples[len(c.samples)-1].T
}

// Length returns the parameter span, a chord-length approximation of the
// arc length.
func (c *DenseCurve) Length() float64 {
	return c.T1() - c.T0()
}

// segment locates the sample interval containing t.
func (c *DenseCurve) segment(t float64) (int, error) {
	if len(c.samples) < 2 || t < c.T0() || t > c.T1() {
		return 0, fmt.Errorf("%w: t=%g, curve spans [%g, %g]", ErrOutOfRange, t, c.T0(), c.T1())
	}
	i := sort.Search(len(c.samples), func(i int) bool { return c.samples[i].T > t }) - 1
	if i >= len(c.samples)-1 {
		i = len(c.samples) - 2
	}
	return i, nil
}

// PointAt evaluates the curve position at parameter t by cubic Hermite
// reconstruction from the two surrounding samples. Evaluating at a sample's
// exact parameter reproduces that sample's position.
func (c *DenseCurve) PointAt(t float64) (geom.Point, error) {
	i, err := c.segment(t)
	if err != nil {
		if len(c.samples) == 1 && t == c.samples[0].T {
			return c.samples[0].P, nil
		}
		return geom.Point{}, err
	}
	s0, s1 := c.samples[i], c.samples[i+1]
	dt := s1.T - s0.T
	u := (t - s0.T) / dt

	// Hermite basis with tangents scaled to the parameter interval. The
	// samples travel at unit speed, so dP/dt is the unit tangent.
	m0 := s0.V.Mul(dt)
	m1 := s1.V.Mul(dt)
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	x := h00*s0.P.X + h10*m0.X + h01*s1.P.X + h11*m1.X
	y := h00*s0.P.Y + h10*m0.Y + h01*s1.P.Y + h11*m1.Y
	return geom.Pt(x, y), nil
}

// TangentAt evaluates the curve's unit tangent at parameter t.
func (c *DenseCurve) TangentAt(t float64) (geom.Vec2, error) {
	i, err := c.segment(t)
	if err != nil {
		return geom.Vec2{}, err
	}
	s0, s1 := c.samples[i], c.samples[i+1]
	dt := s1.T - s0.T
	u := (t - s0.T) / dt

	m0 := s0.V.Mul(dt)
	m1 := s1.V.Mul(dt)
	u2 := u * u
	d00 := 6*u2 - 6*u
	d10 := 3*u2 - 4*u + 1
	d01 := -6*u2 + 6*u
	d11 := 3*u2 - 2*u

	v := geom.V(
		d00*s0.P.X+d10*m0.X+d01*s1.P.X+d11*m1.X,
		d00*s0.P.Y+d10*m0.Y+d01*s1.P.Y+d11*m1.Y,
	)
	return v.Normalize(), nil
}
