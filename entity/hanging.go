package entity

import "github.com/ardnew/xform/vec"

// Tag keys used by hanging entities.
const (
	TagTileX     = "TileX"
	TagTileY     = "TileY"
	TagTileZ     = "TileZ"
	TagDirection = "Direction" // pre-1.13 hanging encoding
	TagDir       = "Dir"       // legacy hanging encoding
	TagFacing    = "Facing"    // block-face encoding
)

// FromPre13Hanging decodes a Direction tag value: 0 south, 1 west,
// 2 north, 3 east.
func FromPre13Hanging(v int) (vec.Direction, bool) {
	switch v {
	case 0:
		return vec.South, true
	case 1:
		return vec.West, true
	case 2:
		return vec.North, true
	case 3:
		return vec.East, true
	default:
		return 0, false
	}
}

// ToPre13Hanging encodes d as a Direction tag value.
func ToPre13Hanging(d vec.Direction) int {
	switch d {
	case vec.South:
		return 0
	case vec.West:
		return 1
	case vec.North:
		return 2
	default:
		return 3
	}
}

// FromLegacyHanging converts a Dir tag value to a Direction tag value.
func FromLegacyHanging(v int) int {
	switch v {
	case 0:
		return 2
	case 1:
		return 1
	case 2:
		return 0
	default:
		return 3
	}
}

// ToLegacyHanging converts a Direction tag value to a Dir tag value.
// The mapping is its own inverse.
func ToLegacyHanging(v int) int {
	return FromLegacyHanging(v)
}

// FromHanging decodes a Facing tag value: 0 down, 1 up, 2 north, 3 south,
// 4 west, 5 east. Up and down have no cardinal direction, so the result is
// a unit vector.
func FromHanging(v int) (vec.Vector3, bool) {
	switch v {
	case 0:
		return vec.Vector3{Y: -1}, true
	case 1:
		return vec.Vector3{Y: 1}, true
	case 2:
		return vec.North.ToVector(), true
	case 3:
		return vec.South.ToVector(), true
	case 4:
		return vec.West.ToVector(), true
	case 5:
		return vec.East.ToVector(), true
	default:
		return vec.Zero, false
	}
}

// ToHanging encodes d as a Facing tag value.
func ToHanging(d vec.Direction) int {
	switch d {
	case vec.North:
		return 2
	case vec.South:
		return 3
	case vec.West:
		return 4
	default:
		return 5
	}
}

// decodeFacing returns the facing vector stored in tags, preferring the
// Direction tag, then Dir, then Facing.
func decodeFacing(tags Tags) (vec.Vector3, bool) {
	if v, ok := tags.Int(TagDirection); ok {
		d, ok := FromPre13Hanging(v)

		return d.ToVector(), ok
	}

	if v, ok := tags.Int(TagDir); ok {
		d, ok := FromPre13Hanging(FromLegacyHanging(v))

		return d.ToVector(), ok
	}

	if v, ok := tags.Int(TagFacing); ok {
		return FromHanging(v)
	}

	return vec.Zero, false
}

// encodeFacing writes d to all three facing tags.
func encodeFacing(tags Tags, d vec.Direction) {
	pre13 := ToPre13Hanging(d)

	tags[TagDirection] = pre13
	tags[TagDir] = ToLegacyHanging(pre13)
	tags[TagFacing] = ToHanging(d)
}

// tilePosition returns the tile position stored in tags, if complete.
func tilePosition(tags Tags) (vec.Vector3, bool) {
	x, okX := tags.Int(TagTileX)
	y, okY := tags.Int(TagTileY)
	z, okZ := tags.Int(TagTileZ)

	if !okX || !okY || !okZ {
		return vec.Zero, false
	}

	return vec.BlockVector3{X: x, Y: y, Z: z}.Vector3(), true
}
