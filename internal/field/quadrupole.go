package field

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Quadrupole is a pointlike quadrupole at (X, Y); Qxx, Qxy, Qyy are the
// in-plane entries of the quadrupole matrix.
type Quadrupole struct {
	X, Y          float64
	Qxx, Qxy, Qyy float64
}

func (q Quadrupole) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(q.X, q.Y))
	d := r.Hypot()
	if d == 0 {
		return geom.Vec2{}
	}
	qr := geom.V(q.Qxx*r.X+q.Qxy*r.Y, q.Qxy*r.X+q.Qyy*r.Y)
	rqr := r.Dot(qr)
	pre := 0.25 / (math.Pi * math.Pow(d, 7))
	return geom.V(
		pre*(2.5*rqr*r.X-d*d*qr.X),
		pre*(2.5*rqr*r.Y-d*d*qr.Y),
	)
}

func (q Quadrupole) PotentialAt(p geom.Point) (float64, bool) {
	r := p.Sub(geom.Pt(q.X, q.Y))
	d := r.Hypot()
	if d == 0 {
		return 0, true
	}
	rqr := q.Qxx*r.X*r.X + 2*q.Qxy*r.X*r.Y + q.Qyy*r.Y*r.Y
	return rqr / (8 * math.Pi * math.Pow(d, 5)), true
}

func (q Quadrupole) Poles() []trace.Pole {
	return []trace.Pole{{P: geom.Pt(q.X, q.Y), Kind: trace.PointPole}}
}
