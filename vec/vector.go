package vec

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Vector3 is an immutable point or direction in 3-D space.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the origin.
var Zero = Vector3{}

// Center is the offset from a block's minimum corner to its center.
var Center = Vector3{0.5, 0.5, 0.5}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied component-wise by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector pointing along v.
// The zero vector normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	n := v.Length()
	if n == 0 {
		return v
	}

	return v.Scale(1 / n)
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}

// ApproxEqual reports whether every component of v is within eps of o.
func (v Vector3) ApproxEqual(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

// Round returns the nearest lattice point, rounding halves up.
func (v Vector3) Round() BlockVector3 {
	return BlockVector3{round(v.X), round(v.Y), round(v.Z)}
}

// Floor returns the lattice point containing v.
func (v Vector3) Floor() BlockVector3 {
	return BlockVector3{
		int(math.Floor(v.X)),
		int(math.Floor(v.Y)),
		int(math.Floor(v.Z)),
	}
}

// String formats v as "x,y,z", the same form [ParseVector3] accepts.
func (v Vector3) String() string {
	return strings.Join([]string{
		strconv.FormatFloat(v.X, 'g', -1, 64),
		strconv.FormatFloat(v.Y, 'g', -1, 64),
		strconv.FormatFloat(v.Z, 'g', -1, 64),
	}, ",")
}

// ParseVector3 parses three comma- or space-separated numbers.
func ParseVector3(s string) (Vector3, error) {
	part := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(part) != 3 {
		return Zero, ErrParse.With(slog.String("input", s), slog.Int("components", len(part)))
	}

	var c [3]float64

	for i, p := range part {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Zero, ErrParse.With(slog.String("input", s), slog.Int("component", i)).Wrap(err)
		}

		c[i] = f
	}

	return Vector3{c[0], c[1], c[2]}, nil
}

// BlockVector3 is an integer lattice point.
type BlockVector3 struct {
	X, Y, Z int
}

// Vector3 returns b as a float vector.
func (b BlockVector3) Vector3() Vector3 {
	return Vector3{float64(b.X), float64(b.Y), float64(b.Z)}
}

// Center returns the center of the block at b.
func (b BlockVector3) Center() Vector3 {
	return b.Vector3().Add(Center)
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}
