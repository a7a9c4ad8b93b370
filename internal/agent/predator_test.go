package agent

import (
	"testing"

	"github.com/talgya/warren/internal/grid"
	"github.com/talgya/warren/internal/occupancy"
)

func TestFoxMovesOntoAdjacentPlayer(t *testing.T) {
	for _, foxStart := range []grid.Coord{{X: 2, Y: 0}, {X: 2, Y: 1}} {
		reg := openRegistry(4)
		player := New(KindPlayer, grid.Coord{X: 1, Y: foxStart.Y})
		fox := New(KindFox, foxStart)

		ai := NewPredatorAI(reg, true)
		ai.Step([]*Agent{fox}, player)

		if !SameTile(fox, player) {
			t.Errorf("fox at %v did not move onto adjacent player at %v (ended at %v)",
				foxStart, player.Coord, fox.Coord)
		}
	}
}

func TestFoxClosesDistance(t *testing.T) {
	reg := openRegistry(6)
	player := New(KindPlayer, grid.Coord{X: 0, Y: 0})
	fox := New(KindFox, grid.Coord{X: 4, Y: 3})

	before := grid.Dist(fox.World, player.World)
	ai := NewPredatorAI(reg, true)
	ai.Step([]*Agent{fox}, player)
	after := grid.Dist(fox.World, player.World)

	if after >= before {
		t.Fatalf("fox did not close distance: %v -> %v", before, after)
	}
}

func TestFoxAvoidsOtherFoxes(t *testing.T) {
	reg := openRegistry(4)
	player := New(KindPlayer, grid.Coord{X: 0, Y: 0})
	// Blocker already sits on the tile between the chaser and the player.
	blocker := New(KindFox, grid.Coord{X: 1, Y: 0})
	chaser := New(KindFox, grid.Coord{X: 2, Y: 0})

	ai := NewPredatorAI(reg, true)
	ai.Step([]*Agent{blocker, chaser}, player)

	if SameTile(chaser, blocker) && chaser != blocker {
		t.Fatalf("chaser moved onto a tile occupied by another fox at snapshot time")
	}
}

func TestFoxStaysWhenNoCandidate(t *testing.T) {
	reg := occupancy.NewRegistry()
	start := grid.Coord{X: 0, Y: 0}
	reg.Add(start, true) // island of one tile: every neighbor is nonexistent

	player := New(KindPlayer, grid.Coord{X: 3, Y: 0})
	fox := New(KindFox, start)

	ai := NewPredatorAI(reg, true)
	ai.Step([]*Agent{fox}, player)

	if fox.Coord != start {
		t.Fatalf("fox moved off the generated island to %v", fox.Coord)
	}
}

func TestFoxRespectsTerrainWhenEnabled(t *testing.T) {
	reg := openRegistry(4)
	player := New(KindPlayer, grid.Coord{X: 0, Y: 0})
	fox := New(KindFox, grid.Coord{X: 2, Y: 0})
	// The direct approach tile is water.
	reg.Block(grid.Coord{X: 1, Y: 0})

	ai := NewPredatorAI(reg, true)
	ai.Step([]*Agent{fox}, player)
	if fox.Coord == (grid.Coord{X: 1, Y: 0}) {
		t.Fatal("fox entered impassable terrain with RespectTerrain enabled")
	}

	// Source-faithful mode walks straight in.
	fox2 := New(KindFox, grid.Coord{X: 2, Y: 0})
	legacy := NewPredatorAI(reg, false)
	legacy.Step([]*Agent{fox2}, player)
	if fox2.Coord != (grid.Coord{X: 1, Y: 0}) {
		t.Fatalf("legacy fox at %v, want the (impassable) direct tile", fox2.Coord)
	}
}

// Legacy mode reopens water, not the ungenerated void past the coastline: a
// fox never steps onto a coordinate that was never generated, even when it
// is the closest approach to the player.
func TestLegacyFoxStaysOnGeneratedTiles(t *testing.T) {
	reg := occupancy.NewRegistry()
	reg.Add(grid.Coord{X: 0, Y: 0}, true)
	reg.Add(grid.Coord{X: 2, Y: 0}, true)
	// The direct approach tile (1,0) was never generated.

	player := New(KindPlayer, grid.Coord{X: 2, Y: 0})
	fox := New(KindFox, grid.Coord{X: 0, Y: 0})

	legacy := NewPredatorAI(reg, false)
	legacy.Step([]*Agent{fox}, player)

	if fox.Coord != (grid.Coord{X: 0, Y: 0}) {
		t.Fatalf("legacy fox left the generated set for %v", fox.Coord)
	}
}

func TestFoxIgnoresReservations(t *testing.T) {
	// Spawn reservations must not shield the player from pursuit.
	reg := openRegistry(4)
	playerTile := grid.Coord{X: 1, Y: 0}
	reg.Reserve(playerTile)

	player := New(KindPlayer, playerTile)
	fox := New(KindFox, grid.Coord{X: 2, Y: 0})

	ai := NewPredatorAI(reg, true)
	ai.Step([]*Agent{fox}, player)
	if !SameTile(fox, player) {
		t.Fatalf("fox at %v failed to enter the player's reserved tile", fox.Coord)
	}
}
