// Package agent provides the entity model (player, foxes, baby rabbits),
// spawn placement, the player movement state machine, and the fox pursuit
// policy. See design doc Section 5.
package agent

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/warren/internal/grid"
	"github.com/talgya/warren/internal/occupancy"
)

// Kind discriminates the agent variants.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindFox
	KindBabyRabbit
)

// KindName returns a human-readable name for logs and the event feed.
func KindName(k Kind) string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFox:
		return "fox"
	case KindBabyRabbit:
		return "baby_rabbit"
	default:
		return "unknown"
	}
}

// Agent is a creature on the island. Heading is meaningful for the player
// only; Rescued for baby rabbits only.
type Agent struct {
	ID      uuid.UUID    `json:"id"`
	Kind    Kind         `json:"kind"`
	Coord   grid.Coord   `json:"coord"`
	World   grid.World   `json:"world"`
	Heading grid.Heading `json:"heading,omitempty"`
	Rescued bool         `json:"rescued,omitempty"`
	Alive   bool         `json:"alive"`
}

// New creates an agent of the given kind at a coordinate.
func New(kind Kind, c grid.Coord) *Agent {
	return &Agent{
		ID:    uuid.New(),
		Kind:  kind,
		Coord: c,
		World: grid.ToWorld(c),
		Alive: true,
	}
}

// MoveTo commits a position change and recomputes the cached world position.
func (a *Agent) MoveTo(c grid.Coord) {
	a.Coord = c
	a.World = grid.ToWorld(c)
}

// SameTile is the single symmetric collision predicate used for every
// agent-agent check. Both axes of both agents, always.
func SameTile(a, b *Agent) bool {
	return a.Coord == b.Coord
}

// Adjacent reports whether two agents occupy the same or neighboring tiles.
func Adjacent(a, b *Agent) bool {
	if SameTile(a, b) {
		return true
	}
	for _, n := range a.Coord.Neighbors() {
		if n == b.Coord {
			return true
		}
	}
	return false
}

// Spawner places agents on random valid tiles, reserving each picked tile so
// no two agents ever spawn on the same coordinate. Spawn reservations are
// held for the whole session.
type Spawner struct {
	rng *rand.Rand
	reg *occupancy.Registry
}

// NewSpawner creates a spawner with its own seeded RNG.
func NewSpawner(seed int64, reg *occupancy.Registry) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed + 300)),
		reg: reg,
	}
}

// Spawn places a new agent on a uniformly random valid tile and reserves it.
func (s *Spawner) Spawn(kind Kind) (*Agent, error) {
	candidates := s.reg.ValidCoords()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("spawn %s: no valid tiles remain", KindName(kind))
	}
	// Map iteration order is random; sort for seed-reproducible placement.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Key() < candidates[j].Key()
	})
	c := candidates[s.rng.Intn(len(candidates))]
	s.reg.Reserve(c)
	return New(kind, c), nil
}

// SpawnNear places an agent on the valid tile closest in world space to the
// wanted coordinate, reserving it. Used for the player, who starts at the
// island origin (or the nearest dry tile to it).
func (s *Spawner) SpawnNear(kind Kind, want grid.Coord) (*Agent, error) {
	if s.reg.IsValid(want) {
		s.reg.Reserve(want)
		return New(kind, want), nil
	}
	candidates := s.reg.ValidCoords()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("spawn %s: no valid tiles remain", KindName(kind))
	}
	target := grid.ToWorld(want)
	best := candidates[0]
	bestDist := grid.Dist(grid.ToWorld(best), target)
	for _, c := range candidates[1:] {
		if d := grid.Dist(grid.ToWorld(c), target); d < bestDist ||
			(d == bestDist && c.Key() < best.Key()) {
			best = c
			bestDist = d
		}
	}
	s.reg.Reserve(best)
	return New(kind, best), nil
}
