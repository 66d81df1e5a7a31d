// Package geom provides the 2D primitives the tracer works in: positions
// as Point and directions/field values as Vec2. Both are plain value types;
// all operations return new values.
package geom

import (
	"fmt"
	"math"
)

type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Translate moves p by the vector v.
func (p Point) Translate(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub computes p−o as a vector.
func (p Point) Sub(o Point) Vec2 {
	return Vec2{X: p.X - o.X, Y: p.Y - o.Y}
}

// Lerp linearly interpolates between two points.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{
		X: p.X + t*(o.X-p.X),
		Y: p.Y + t*(o.Y-p.Y),
	}
}

// Midpoint returns the midpoint of two points.
func (p Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (p.X + o.X), Y: 0.5 * (p.Y + o.Y)}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (p Point) DistanceSquared(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// IsNaN reports whether at least one of x and y is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

type Vec2 struct {
	X float64
	Y float64
}

// V returns the vector ⟨x, y⟩.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Hypot2 returns the squared magnitude of the vector.
func (v Vec2) Hypot2() float64 {
	return v.Dot(v)
}

// Angle returns atan2(y, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns a vector of magnitude 1 with the same direction as v,
// or the zero vector if v has magnitude 0.
func (v Vec2) Normalize() Vec2 {
	h := v.Hypot()
	if h == 0 {
		return Vec2{}
	}
	return v.Mul(1 / h)
}

// Lerp linearly interpolates between two vectors.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Mul(t))
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Mul(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Negate returns a new vector with the signs of x and y flipped.
func (v Vec2) Negate() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// IsNaN reports whether at least one of x and y is NaN.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// CosBetween returns the cosine of the angle between two vectors,
// or 0 if either is the zero vector.
func CosBetween(a, b Vec2) float64 {
	d := a.Hypot() * b.Hypot()
	if d == 0 {
		return 0
	}
	return a.Dot(b) / d
}

// SinBetween returns the sine of the angle between two vectors,
// or 0 if either is the zero vector.
func SinBetween(a, b Vec2) float64 {
	d := a.Hypot() * b.Hypot()
	if d == 0 {
		return 0
	}
	return a.Cross(b) / d
}

// AngleDiff returns the difference a1−a0 wrapped into (−π, π].
func AngleDiff(a1, a0 float64) float64 {
	d := a1 - a0
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}
