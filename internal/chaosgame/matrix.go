package chaosgame

import "math"

// 2×2 matrix (row-major)
type Mat2 struct {
	M [2][2]Real
}

func I2() Mat2 {
	return Mat2{M: [2][2]Real{
		{1, 0},
		{0, 1},
	}}
}

// Rot2 is the counter-clockwise rotation by a radians.
func Rot2(a Real) Mat2 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat2{M: [2][2]Real{
		{c, -s},
		{s, c},
	}}
}

func (A Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		A.M[0][0]*v.X + A.M[0][1]*v.Y,
		A.M[1][0]*v.X + A.M[1][1]*v.Y,
	}
}
