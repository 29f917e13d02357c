package vec

import (
	"fmt"
	"math"
)

// Affine is a 3x4 affine map: a linear part m[0..2][0..2] followed by the
// translation column m[i][3].
//
// The zero value is not the identity; use [Identity].
type Affine struct {
	m [3][4]float64
}

// Identity returns the affine map that leaves every point unchanged.
func Identity() Affine {
	return Affine{m: [3][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}}
}

// Translate returns a map that offsets points by (dx, dy, dz).
func Translate(dx, dy, dz float64) Affine {
	a := Identity()
	a.m[0][3], a.m[1][3], a.m[2][3] = dx, dy, dz

	return a
}

// Scale returns a map that scales each axis independently. A negative
// factor reflects across the corresponding plane.
func Scale(sx, sy, sz float64) Affine {
	return Affine{m: [3][4]float64{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
	}}
}

// RotateX returns a rotation about the X axis by deg degrees.
func RotateX(deg float64) Affine {
	c, s := cosSin(deg)

	return Affine{m: [3][4]float64{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
	}}
}

// RotateY returns a rotation about the Y axis by deg degrees.
// A quarter turn maps +X to -Z (east to north).
func RotateY(deg float64) Affine {
	c, s := cosSin(deg)

	return Affine{m: [3][4]float64{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
	}}
}

// RotateZ returns a rotation about the Z axis by deg degrees.
func RotateZ(deg float64) Affine {
	c, s := cosSin(deg)

	return Affine{m: [3][4]float64{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
	}}
}

// Apply maps v through a.
func (a Affine) Apply(v Vector3) Vector3 {
	m := &a.m

	return Vector3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// IsIdentity reports whether a is exactly the identity map.
func (a Affine) IsIdentity() bool {
	return a == Identity()
}

// Then returns the map that applies a first and then b.
func (a Affine) Then(b Affine) Affine {
	var r Affine

	for i := range 3 {
		for j := range 4 {
			var sum float64
			for k := range 3 {
				sum += b.m[i][k] * a.m[k][j]
			}

			if j == 3 {
				sum += b.m[i][3]
			}

			r.m[i][j] = sum
		}
	}

	return r
}

// String formats the rows of a.
func (a Affine) String() string {
	return fmt.Sprintf("Affine%v", a.m)
}

// cosSin snaps quarter turns to exact values so that repeated right-angle
// rotations stay on the lattice.
func cosSin(deg float64) (float64, float64) {
	if q := deg / 90; q == math.Trunc(q) {
		switch int(math.Mod(math.Mod(q, 4)+4, 4)) {
		case 0:
			return 1, 0
		case 1:
			return 0, 1
		case 2:
			return -1, 0
		case 3:
			return 0, -1
		}
	}

	rad := deg * math.Pi / 180

	return math.Cos(rad), math.Sin(rad)
}
