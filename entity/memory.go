package entity

import (
	"slices"
	"sync"
)

// Memory is an in-memory [Space]. It is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	entities []*MemoryEntity
	nextID   int
	reject   func(Location, State) bool
}

// NewMemory returns an empty Memory space. Entities for which reject
// returns true are not created; reject may be nil.
func NewMemory(reject func(Location, State) bool) *Memory {
	return &Memory{reject: reject}
}

// MemoryEntity is an entity held by a [Memory] space.
type MemoryEntity struct {
	space *Memory
	id    int
	loc   Location
	state State
	empty bool
}

// CreateEntity adds an entity with a private copy of state's tags.
func (s *Memory) CreateEntity(loc Location, state State) Entity {
	if s.reject != nil && s.reject(loc, state) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++

	e := &MemoryEntity{
		space: s,
		id:    s.nextID,
		loc:   loc,
		state: State{Type: state.Type, Tags: state.Tags.Clone()},
	}

	s.entities = append(s.entities, e)

	return e
}

// AddStateless adds an entity that reports no state.
func (s *Memory) AddStateless(loc Location) *MemoryEntity {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++

	e := &MemoryEntity{space: s, id: s.nextID, loc: loc, empty: true}
	s.entities = append(s.entities, e)

	return e
}

// Entities returns the entities currently in the space, in creation order.
func (s *Memory) Entities() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entity, len(s.entities))
	for i, e := range s.entities {
		out[i] = e
	}

	return out
}

// Len returns the number of entities in the space.
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entities)
}

// State implements [Entity].
func (e *MemoryEntity) State() (State, bool) {
	if e.empty {
		return State{}, false
	}

	return State{Type: e.state.Type, Tags: e.state.Tags.Clone()}, true
}

// Location implements [Entity].
func (e *MemoryEntity) Location() Location { return e.loc }

// Remove implements [Entity]. It fails if the entity was already removed.
func (e *MemoryEntity) Remove() bool {
	s := e.space

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.entities, e)
	if i < 0 {
		return false
	}

	s.entities = slices.Delete(s.entities, i, i+1)

	return true
}
