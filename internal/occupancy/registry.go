// Package occupancy tracks which generated tiles can currently be entered:
// existence, terrain passability, and per-session reservations.
// See design doc Section 4.
package occupancy

import "github.com/talgya/warren/internal/grid"

type state struct {
	passable bool
	reserved bool
}

// Registry is the validity ledger consulted by movement, spawning, and
// decoration placement. Entries exist only for generated tiles.
type Registry struct {
	tiles map[uint64]*state
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tiles: make(map[uint64]*state)}
}

// Add registers a generated tile. Called once per tile during terrain
// generation; later Adds for the same coordinate overwrite.
func (r *Registry) Add(c grid.Coord, passable bool) {
	r.tiles[c.Key()] = &state{passable: passable}
}

// Exists reports whether a tile was generated at the coordinate.
func (r *Registry) Exists(c grid.Coord) bool {
	_, ok := r.tiles[c.Key()]
	return ok
}

// Passable reports whether the tile exists and is passable terrain.
func (r *Registry) Passable(c grid.Coord) bool {
	s, ok := r.tiles[c.Key()]
	return ok && s.passable
}

// IsValid reports whether an agent may occupy the coordinate: the tile must
// exist, be passable, and not be reserved by another agent.
func (r *Registry) IsValid(c grid.Coord) bool {
	s, ok := r.tiles[c.Key()]
	return ok && s.passable && !s.reserved
}

// Block permanently marks a tile impassable. Used when a blocking decoration
// (rock, tree) lands on it.
func (r *Registry) Block(c grid.Coord) {
	if s, ok := r.tiles[c.Key()]; ok {
		s.passable = false
	}
}

// Reserve marks the tile as held by an agent. Reservations made at spawn are
// never released for the rest of the session: the source game kept them, and
// it prevents two agents from ever spawning on the same tile.
func (r *Registry) Reserve(c grid.Coord) {
	if s, ok := r.tiles[c.Key()]; ok {
		s.reserved = true
	}
}

// Release clears a reservation.
func (r *Registry) Release(c grid.Coord) {
	if s, ok := r.tiles[c.Key()]; ok {
		s.reserved = false
	}
}

// Count returns the number of registered tiles.
func (r *Registry) Count() int {
	return len(r.tiles)
}

// ValidCoords returns every coordinate that currently satisfies IsValid.
// Iteration order is map order; callers wanting determinism must sort.
func (r *Registry) ValidCoords() []grid.Coord {
	out := make([]grid.Coord, 0, len(r.tiles))
	for k, s := range r.tiles {
		if s.passable && !s.reserved {
			out = append(out, grid.FromKey(k))
		}
	}
	return out
}
