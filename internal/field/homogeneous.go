package field

import (
	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Homogeneous is a constant field (Ex, Ey) everywhere.
type Homogeneous struct {
	Ex, Ey float64
}

func (h Homogeneous) FieldAt(p geom.Point) geom.Vec2 {
	return geom.V(h.Ex, h.Ey)
}

func (h Homogeneous) PotentialAt(p geom.Point) (float64, bool) {
	return -p.X*h.Ex - p.Y*h.Ey, true
}

func (h Homogeneous) Poles() []trace.Pole {
	return nil
}
