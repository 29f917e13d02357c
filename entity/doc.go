// Package entity applies transform trees to entities copied between spaces.
//
// [Transform] is the pure mapping: it moves an entity's position about the
// block-center pivot, turns its direction, and rewrites the tile position
// and facing that hanging entities keep in their tags. [Copier] drives the
// mapping over live entities, creating the results in a destination
// [Space] and optionally removing the sources.
package entity
