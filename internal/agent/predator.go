package agent

import (
	"github.com/talgya/warren/internal/grid"
	"github.com/talgya/warren/internal/occupancy"
)

// PredatorAI is the fox decision policy: greedy single-step pursuit of the
// player, no path planning. Driven by the session's fixed one-second timer.
type PredatorAI struct {
	reg *occupancy.Registry

	// RespectTerrain filters fox destinations by terrain passability. The
	// source game only filtered by other-fox occupancy, which let foxes walk
	// into water; kept behind this switch for comparison runs.
	RespectTerrain bool
}

// NewPredatorAI creates the fox policy.
func NewPredatorAI(reg *occupancy.Registry, respectTerrain bool) *PredatorAI {
	return &PredatorAI{reg: reg, RespectTerrain: respectTerrain}
}

// Step advances every fox by at most one tile. Mutual avoidance filters each
// fox's candidates against a snapshot of all fox positions taken at the start
// of the tick — a filter, not a lock, so two foxes processed in the same tick
// can still converge on one tile. A fox with no candidate stays put.
func (ai *PredatorAI) Step(foxes []*Agent, player *Agent) {
	snapshot := make(map[grid.Coord]*Agent, len(foxes))
	for _, f := range foxes {
		snapshot[f.Coord] = f
	}

	for _, fox := range foxes {
		if !fox.Alive {
			continue
		}

		var best grid.Coord
		bestDist := -1.0
		for _, c := range fox.Coord.Neighbors() {
			if other, taken := snapshot[c]; taken && other != fox {
				continue
			}
			// Even in legacy mode foxes stay on generated tiles; the
			// switch only reopens water, not the void past the coast.
			if !ai.reg.Exists(c) {
				continue
			}
			if ai.RespectTerrain && !ai.reg.Passable(c) {
				continue
			}
			d := grid.Dist(grid.ToWorld(c), player.World)
			if bestDist < 0 || d < bestDist {
				best = c
				bestDist = d
			}
		}

		if bestDist >= 0 {
			fox.MoveTo(best)
		}
	}
}
