package trace

import (
	"fmt"

	"github.com/anzel/fieldtrace/internal/geom"
)

// FieldLine is one traced field line: a dense curve through the start point
// plus the stop condition of each requested direction. It is computed once
// by Trace and immutable afterwards, safe for concurrent reads.
type FieldLine struct {
	ev    Evaluator
	start geom.Point
	opts  Options

	curve  *DenseCurve
	stopF  StopCondition
	stopB  StopCondition
	passed int
}

// Trace integrates the field line of ev through start. Structurally invalid
// input fails here, before any integration; everything the integration
// itself runs into is reported through the per-direction stop conditions.
func Trace(ev Evaluator, start geom.Point, opts Options) (*FieldLine, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	l := &FieldLine{ev: ev, start: start, opts: opts}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l, nil
}

// Start returns the start position the line was traced from.
func (l *FieldLine) Start() geom.Point { return l.start }

// Curve returns the line's dense curve for arbitrary-parameter resampling.
func (l *FieldLine) Curve() *DenseCurve { return l.curve }

// StopForward reports why the forward direction ended, StopNone if forward
// was not requested.
func (l *FieldLine) StopForward() StopCondition { return l.stopF }

// StopBackward reports why the backward direction ended, StopNone if
// backward was not requested.
func (l *FieldLine) StopBackward() StopCondition { return l.stopB }

// PassedPoles reports how many dipole-like singularities the line passed
// through, both directions combined.
func (l *FieldLine) PassedPoles() int { return l.passed }

// Polyline reduces the line to straight segments within the given maximum
// perpendicular deviation.
func (l *FieldLine) Polyline(maxDev float64) Polyline {
	pl := Simplify(l.curve, maxDev)
	pl.Closed = l.stopF == StopLoopClosed || l.stopB == StopLoopClosed
	return pl
}

func (l *FieldLine) run() error {
	// the initial tangent must be well defined before any stepping
	if l.ev.F(l.start).Normalize() == (geom.Vec2{}) &&
		l.opts.StartV == (geom.Vec2{}) && l.opts.StartStep == (geom.Vec2{}) {
		return ErrAmbiguousStart
	}

	switch l.opts.Directions {
	case Forward:
		c, stop, err := l.tracePart(1)
		if err != nil {
			return err
		}
		l.curve, l.stopF = c, stop

	case Backward:
		c, stop, err := l.tracePart(-1)
		if err != nil {
			return err
		}
		l.curve, l.stopB = reverseCurve(c), stop

	case Both:
		back, stopB, err := l.tracePart(-1)
		if err != nil {
			return err
		}
		l.stopB = stopB
		rev := reverseCurve(back)
		if stopB == StopLoopClosed {
			// the backward pass already went all the way around
			l.curve, l.stopF = rev, StopLoopClosed
			return nil
		}
		fwd, stopF, err := l.tracePart(1)
		if err != nil {
			return err
		}
		l.stopF = stopF
		l.curve = concatCurves(rev, fwd)
	}
	return nil
}

// tracePart integrates one direction from the start point; sign selects
// travel with (+1) or against (−1) the field.
func (l *FieldLine) tracePart(sign float64) (*DenseCurve, StopCondition, error) {
	opts := l.opts
	f := func(p geom.Point) geom.Vec2 {
		v := l.ev.F(p).Normalize()
		if sign < 0 {
			return v.Negate()
		}
		return v
	}
	tol := opts.errTol()
	it := newIntegrator(f, tol, opts.MaxStep)
	sh := newSingHandler(l.ev.Poles(), l.ev.F, opts, sign)
	ld := newLoopDetector(l.start, opts)
	stopPred := opts.StopForward
	if sign < 0 {
		stopPred = opts.StopBackward
	}
	be := &boundsEval{bounds: opts.Bounds, stop: stopPred, tol: tol}
	defer func() { l.passed += sh.Passed() }()

	p := l.start
	v := f(p)
	if opts.StartV != (geom.Vec2{}) {
		v = opts.StartV.Normalize()
		if sign < 0 {
			v = v.Negate()
		}
	}

	c := &DenseCurve{}
	c.append(Sample{T: 0, P: p, V: v})
	length := 0.0

	if opts.StartStep != (geom.Vec2{}) {
		// line starts on a dipole: displace by the given first step, the
		// field direction only becomes meaningful away from the pole
		h := opts.StartStep.Hypot()
		dir := opts.StartStep.Normalize()
		p = p.Translate(opts.StartStep)
		v = f(p)
		if v == (geom.Vec2{}) {
			return c, StopSingularity, nil
		}
		c.replaceLast(Sample{T: 0, P: l.start, V: dir})
		length = h
		c.append(Sample{T: length, P: p, V: v, H: h})
		it.setStep(h)
	}

	stop := StopNone
steps:
	for n := 0; ; n++ {
		if n >= opts.MaxSteps {
			stop = StopStepLimit
			break
		}
		if length >= opts.MaxLength {
			stop = StopLengthLimit
			break
		}

		sh.approach(it, p, v)
		ld.approach(it, c, p, v)

		// a collapsed step away from any declared pole hints at a kink of
		// the direction field, such as the null between equal sources
		if it.h < cornerStepScale && !sh.nearPole(p) {
			if cn := detectCorner(f, p, v, it.h, tol); cn.found {
				for _, nd := range cn.nodes {
					if d := p.Distance(nd.p); d > 0 {
						length += d
						c.append(Sample{T: length, P: nd.p, V: nd.v, H: nd.h})
						p, v = nd.p, nd.v
					}
				}
				if cn.end {
					stop = StopSingularity
					break
				}
				if ld.closed(c, p, v) {
					c.replaceLast(Sample{T: length, P: l.start, V: v, H: it.h})
					stop = StopLoopClosed
					break
				}
				continue
			}
		}

		res := it.step(p, v)
		if res.underflow {
			if sh.nearPole(p) {
				stop = StopSingularity
				break
			}
			return nil, StopNone, fmt.Errorf("%w at %v", ErrStepUnderflow, p)
		}
		if !res.ok {
			// rejected, retry with the adapted step
			continue
		}
		pNew := res.p
		vNew := f(pNew)

		if vNew == (geom.Vec2{}) {
			// field vanishes, the line is stuck
			length += p.Distance(pNew)
			c.append(Sample{T: length, P: pNew, V: v, H: res.h})
			stop = StopSingularity
			break
		}

		hit := sh.check(p, pNew, vNew)
		switch hit.action {
		case poleStop:
			if d := p.Distance(hit.at); d > 0 {
				length += d
				c.append(Sample{T: length, P: hit.at, V: hit.at.Sub(p).Normalize(), H: res.h})
			}
			stop = StopSingularity
			break steps
		case polePass:
			if d := p.Distance(hit.at); d > 0 {
				length += d
				c.append(Sample{T: length, P: hit.at, V: v, H: res.h})
			}
			v = f(hit.restart)
			if v == (geom.Vec2{}) || hit.at.Distance(hit.restart) == 0 {
				stop = StopSingularity
				break steps
			}
			length += hit.at.Distance(hit.restart)
			c.append(Sample{T: length, P: hit.restart, V: v, H: hit.step})
			p = hit.restart
			it.setStep(hit.step)
			continue
		}

		chord := p.Distance(pNew)
		if chord == 0 {
			// the point does not move at this resolution
			if it.h > 2*tol {
				it.setStep(it.h / 7)
				continue
			}
			stop = StopSingularity
			break
		}

		prevP, prevLen := p, length
		length += chord
		c.append(Sample{T: length, P: pNew, V: vNew, H: res.h})
		p, v = pNew, vNew

		if ld.closed(c, pNew, vNew) {
			c.replaceLast(Sample{T: length, P: l.start, V: vNew, H: res.h})
			stop = StopLoopClosed
			break
		}

		if cr := be.check(prevP, pNew); cr.stop != StopNone {
			t := prevLen + prevP.Distance(cr.at)
			if t <= prevLen {
				c.dropLast()
			} else {
				dir := cr.at.Sub(prevP).Normalize()
				if dir == (geom.Vec2{}) {
					dir = vNew
				}
				c.replaceLast(Sample{T: t, P: cr.at, V: dir, H: res.h})
			}
			stop = cr.stop
			break
		}
	}
	return c, stop, nil
}

// reverseCurve flips a curve traced against the field into forward
// orientation: parameters are mirrored and tangents negated so travel
// direction stays consistent.
func reverseCurve(c *DenseCurve) *DenseCurve {
	out := &DenseCurve{samples: make([]Sample, 0, c.Len())}
	t1 := c.T1()
	for i := c.Len() - 1; i >= 0; i-- {
		s := c.At(i)
		out.append(Sample{T: t1 - s.T, P: s.P, V: s.V.Negate(), H: s.H})
	}
	return out
}

// concatCurves joins the reversed backward curve and the forward curve at
// the shared start-point seam into one monotonically parametrized curve.
func concatCurves(back, fwd *DenseCurve) *DenseCurve {
	if back.Len() == 0 {
		return fwd
	}
	out := &DenseCurve{samples: make([]Sample, 0, back.Len()+fwd.Len())}
	out.samples = append(out.samples, back.samples...)
	offset := back.T1()
	for i := 1; i < fwd.Len(); i++ {
		s := fwd.At(i)
		out.append(Sample{T: offset + s.T, P: s.P, V: s.V, H: s.H})
	}
	return out
}
