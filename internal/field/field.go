// Package field provides closed-form 2D cross-sections of electric and
// magnetic field sources and composes them into a single evaluator. Units
// are SI with magnetic fields as H and electric fields as D, so no mu_0 or
// epsilon_0 constants appear.
package field

import (
	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

// Source is one field contribution of a specific kind.
type Source interface {
	// FieldAt returns the source's field vector at p.
	FieldAt(p geom.Point) geom.Vec2

	// PotentialAt returns the source's scalar potential at p, false if the
	// source kind has none.
	PotentialAt(p geom.Point) (float64, bool)

	// Poles enumerates the source's singular geometries, nil if none.
	Poles() []trace.Pole
}

// Field is the superposition of its sources. The zero value is a valid,
// everywhere-zero field. Field is read-only after construction and safe for
// concurrent use.
type Field struct {
	sources []Source
}

func New(sources ...Source) *Field {
	return &Field{sources: sources}
}

func (f *Field) Add(s Source) {
	f.sources = append(f.sources, s)
}

func (f *Field) Sources() []Source {
	return f.sources
}

// F returns the total field vector at p.
func (f *Field) F(p geom.Point) geom.Vec2 {
	var sum geom.Vec2
	for _, s := range f.sources {
		sum = sum.Add(s.FieldAt(p))
	}
	return sum
}

// Fn returns the normalized field direction at p, the zero vector where the
// field vanishes.
func (f *Field) Fn(p geom.Point) geom.Vec2 {
	return f.F(p).Normalize()
}

// Potential returns the total scalar potential at p. It reports false if
// any source kind has no potential, since a partial sum would be misleading.
func (f *Field) Potential(p geom.Point) (float64, bool) {
	sum := 0.0
	for _, s := range f.sources {
		v, ok := s.PotentialAt(p)
		if !ok {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

// Poles enumerates the known singular geometries of all sources.
func (f *Field) Poles() []trace.Pole {
	var poles []trace.Pole
	for _, s := range f.sources {
		poles = append(poles, s.Poles()...)
	}
	return poles
}

var _ trace.Evaluator = (*Field)(nil)
var _ trace.PotentialEvaluator = (*Field)(nil)
