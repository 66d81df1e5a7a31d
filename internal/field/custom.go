package field

import (
	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Custom wraps user-defined field functions as a source. V and KnownPoles
// may be left nil.
type Custom struct {
	F          func(p geom.Point) geom.Vec2
	V          func(p geom.Point) float64
	KnownPoles []trace.Pole
}

func (c Custom) FieldAt(p geom.Point) geom.Vec2 {
	if c.F == nil {
		return geom.Vec2{}
	}
	return c.F(p)
}

func (c Custom) PotentialAt(p geom.Point) (float64, bool) {
	if c.V == nil {
		return 0, false
	}
	return c.V(p), true
}

func (c Custom) Poles() []trace.Pole {
	return c.KnownPoles
}
