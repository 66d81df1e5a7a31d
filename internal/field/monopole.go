package field

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Monopole is a point charge or magnetic monopole at (X, Y) with strength Q.
type Monopole struct {
	X, Y float64
	Q    float64
}

func (m Monopole) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(m.X, m.Y))
	d := r.Hypot()
	if d == 0 {
		return geom.Vec2{}
	}
	pre := m.Q / (4 * math.Pi * d * d * d)
	return r.Mul(pre)
}

func (m Monopole) PotentialAt(p geom.Point) (float64, bool) {
	d := math.Max(1e-16, p.Distance(geom.Pt(m.X, m.Y)))
	return m.Q / (4 * math.Pi * d), true
}

func (m Monopole) Poles() []trace.Pole {
	return []trace.Pole{{P: geom.Pt(m.X, m.Y), Kind: trace.PointPole}}
}
