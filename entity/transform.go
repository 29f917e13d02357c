package entity

import (
	"github.com/ardnew/xform/transform"
	"github.com/ardnew/xform/vec"
)

// Transform maps an entity's location and state through m, moving it from
// the block at from to the block at to. Rotations and reflections act about
// the center of the from block.
//
// The returned state shares nothing mutable with st. When st carries a tile
// position, the tile is moved the same way, and a stored facing is turned
// and snapped to the nearest cardinal direction, then written back in all
// three encodings. A facing with no unique nearest cardinal is left as it
// was, as is any facing under an identity transform.
func Transform(
	m transform.Mapper,
	loc Location,
	st State,
	from, to vec.Vector3,
) (Location, State) {
	pivot := from.Round().Center()
	dest := to.Round().Center()

	out := Location{
		Position:  m.Apply(loc.Position.Sub(pivot)).Add(dest),
		Direction: loc.Direction,
	}

	if !m.IsIdentity() {
		out.Direction = turn(m, loc.Direction)
	}

	return out, transformTags(m, st, from, to)
}

// turn maps a direction through the linear part of m.
func turn(m transform.Mapper, d vec.Vector3) vec.Vector3 {
	return m.Apply(d).Sub(m.Apply(vec.Zero)).Normalize()
}

func transformTags(m transform.Mapper, st State, from, to vec.Vector3) State {
	tile, ok := tilePosition(st.Tags)
	if !ok {
		return State{Type: st.Type, Tags: st.Tags.Clone()}
	}

	tags := st.Tags.Clone()

	newTile := m.Apply(tile.Sub(from)).Add(to).Round()
	tags[TagTileX] = newTile.X
	tags[TagTileY] = newTile.Y
	tags[TagTileZ] = newTile.Z

	if !m.IsIdentity() {
		if facing, ok := decodeFacing(tags); ok {
			if d, ok := vec.FindClosestCardinal(turn(m, facing)); ok {
				encodeFacing(tags, d)
			}
		}
	}

	return State{Type: st.Type, Tags: tags}
}
