package entity

import (
	"maps"
	"math"

	"github.com/ardnew/xform/vec"
)

// Location is an entity's position and facing direction.
type Location struct {
	Position  vec.Vector3 `yaml:"position"`
	Direction vec.Vector3 `yaml:"direction"`
}

// Tags is an entity's auxiliary structured state. Values are the scalars
// and nested values of the entity's encoded data.
type Tags map[string]any

// Int returns the integer stored at key. Floats are accepted only when
// they hold an integral value.
func (t Tags) Int(key string) (int, bool) {
	switch v := t[key].(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}

		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}

		return int(v), true
	default:
		return 0, false
	}
}

// Has reports whether key is present.
func (t Tags) Has(key string) bool {
	_, ok := t[key]

	return ok
}

// Clone returns a shallow copy of t.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}

	return maps.Clone(t)
}

// State is the type and tags of an entity. A State is treated as a value:
// nothing in this package modifies one in place.
type State struct {
	Type string `yaml:"type"`
	Tags Tags   `yaml:"tags,omitempty"`
}

// Entity is a live entity in some space.
type Entity interface {
	// State returns the entity's state, or false if it has none.
	State() (State, bool)

	// Location returns the entity's current location.
	Location() Location

	// Remove deletes the entity from its space and reports success.
	Remove() bool
}

// Space is a destination that can create entities.
type Space interface {
	// CreateEntity creates an entity and returns it, or nil on failure.
	CreateEntity(loc Location, state State) Entity
}
