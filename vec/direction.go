package vec

import "math"

// Direction is one of the four horizontal cardinal directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Cardinals lists the horizontal directions in clockwise order.
var Cardinals = [...]Direction{North, East, South, West}

// String returns the lowercase name of d.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ToVector returns the unit vector of d. North is -Z and East is +X.
func (d Direction) ToVector() Vector3 {
	switch d {
	case North:
		return Vector3{0, 0, -1}
	case East:
		return Vector3{1, 0, 0}
	case South:
		return Vector3{0, 0, 1}
	case West:
		return Vector3{-1, 0, 0}
	default:
		return Zero
	}
}

// TieTolerance is the largest dot-product difference at which two
// cardinals count as equally close.
const TieTolerance = 1e-9

// FindClosestCardinal returns the cardinal direction whose vector has the
// largest dot product with v.
//
// It reports false when no direction is clearly closest: v is not finite,
// has no horizontal component, or lies between two cardinals to within
// [TieTolerance].
func FindClosestCardinal(v Vector3) (Direction, bool) {
	if !v.IsFinite() {
		return 0, false
	}

	best, bestDot, tied := North, math.Inf(-1), false

	for _, d := range Cardinals {
		dot := v.Dot(d.ToVector())

		switch {
		case math.Abs(dot-bestDot) <= TieTolerance:
			tied = true
		case dot > bestDot:
			best, bestDot, tied = d, dot, false
		}
	}

	if tied || bestDot <= 0 {
		return 0, false
	}

	return best, true
}
