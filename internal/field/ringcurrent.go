package field

import (
	"math"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// RingCurrent is a circular current loop perpendicular to the image plane,
// centered at (X, Y) with radius R and current I; Phi is the angle of the
// loop axis against the x axis.
type RingCurrent struct {
	X, Y float64
	Phi  float64
	R    float64
	I    float64
}

func (rc RingCurrent) FieldAt(p geom.Point) geom.Vec2 {
	r := p.Sub(geom.Pt(rc.X, rc.Y))
	// cylindrical coordinates aligned to the ring axis
	zv := geom.V(math.Cos(rc.Phi), math.Sin(rc.Phi))
	rhov := geom.V(zv.Y, -zv.X)
	z := r.Dot(zv)
	rho := r.Dot(rhov)
	if rho < 0 {
		rhov = rhov.Negate()
		rho = -rho
	}

	rp := math.Hypot(rc.R+rho, z)
	rm := math.Hypot(rc.R-rho, z)
	kc := math.Max(1e-16, rm/rp)
	pre := rc.I * rc.R / (math.Pi * rp * rp * rp)

	// field of a current loop via Bulirsch integrals, doi:10.2172/1377379
	fz := cel(kc, kc*kc, rc.R+rho, rc.R-rho) * pre
	frho := cel(kc, kc*kc, -1, 1) * pre * z

	return geom.V(frho*rhov.X+fz*zv.X, frho*rhov.Y+fz*zv.Y)
}

func (rc RingCurrent) PotentialAt(p geom.Point) (float64, bool) {
	return 0, false
}

// Poles is nil: the loop's wire cross-sections are orbited by the field
// lines, never approached head-on.
func (rc RingCurrent) Poles() []trace.Pole {
	return nil
}

// cel is the Bulirsch complete elliptic integral, doi:10.1007/BF02165405.
func cel(kc, p, a, b float64) float64 {
	if kc == 0 {
		return math.NaN()
	}
	const tol = 1e-9 // relative error is tol squared
	k := math.Abs(kc)
	kc = k
	m := 1.0

	if p > 0 {
		p = math.Sqrt(p)
		b /= p
	} else {
		f := kc * kc
		g := 1 - p
		q := (1 - f) * (b - a*p)
		f -= p
		p = math.Sqrt(f / g)
		a = (a - b) / g
		b = a*p - q/(g*g*p)
	}

	for i := 0; ; i++ {
		f := a
		a += b / p
		g := k / p
		b = 2 * (b + f*g)
		p += g
		g = m
		m += kc
		if math.Abs(g-kc) <= g*tol || i >= 10 {
			break
		}
		kc = 2 * math.Sqrt(k)
		k = kc * m
	}
	return math.Pi * 0.5 * (a*m + b) / (m * (m + p))
}
