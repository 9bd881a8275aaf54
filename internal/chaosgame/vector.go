package chaosgame

import "math"

// Vec2 is a position or direction in world coordinates.
type Vec2 struct {
	X, Y Real
}

// Vector functions
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (v Vec2) Mul(s Real) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product between two vectors.
func (a Vec2) Dot(b Vec2) Real { return a.X*b.X + a.Y*b.Y }

// Len returns the Euclidean length of the vector.
func (v Vec2) Len() Real { return math.Sqrt(v.Dot(v)) }

// Lerp moves from a toward b by t.
func (a Vec2) Lerp(b Vec2, t Real) Vec2 {
	return Vec2{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t)}
}
