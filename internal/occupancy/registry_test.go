package occupancy

import (
	"testing"

	"github.com/talgya/warren/internal/grid"
)

func TestIsValidRequiresExistence(t *testing.T) {
	r := NewRegistry()
	if r.IsValid(grid.Coord{X: 1, Y: 1}) {
		t.Fatal("ungenerated coordinate reported valid")
	}
	r.Add(grid.Coord{X: 1, Y: 1}, true)
	if !r.IsValid(grid.Coord{X: 1, Y: 1}) {
		t.Fatal("generated passable tile reported invalid")
	}
}

func TestWaterNeverValid(t *testing.T) {
	r := NewRegistry()
	c := grid.Coord{X: 0, Y: 0}
	r.Add(c, false)
	if r.IsValid(c) {
		t.Fatal("impassable tile reported valid")
	}
	// Releasing a reservation must not resurrect impassable terrain.
	r.Release(c)
	if r.IsValid(c) {
		t.Fatal("impassable tile became valid after Release")
	}
}

func TestReserveRelease(t *testing.T) {
	r := NewRegistry()
	c := grid.Coord{X: 2, Y: 3}
	r.Add(c, true)

	r.Reserve(c)
	if r.IsValid(c) {
		t.Fatal("reserved tile reported valid")
	}
	if !r.Passable(c) {
		t.Fatal("reservation must not change terrain passability")
	}

	r.Release(c)
	if !r.IsValid(c) {
		t.Fatal("released tile reported invalid")
	}
}

func TestBlockIsPermanent(t *testing.T) {
	r := NewRegistry()
	c := grid.Coord{X: -4, Y: 5}
	r.Add(c, true)
	r.Block(c)
	if r.Passable(c) || r.IsValid(c) {
		t.Fatal("blocked tile still passable")
	}
}

func TestValidCoordsExcludesReservedAndBlocked(t *testing.T) {
	r := NewRegistry()
	r.Add(grid.Coord{X: 0, Y: 0}, true)
	r.Add(grid.Coord{X: 1, Y: 0}, true)
	r.Add(grid.Coord{X: 2, Y: 0}, false)
	r.Reserve(grid.Coord{X: 1, Y: 0})

	got := r.ValidCoords()
	if len(got) != 1 || got[0] != (grid.Coord{X: 0, Y: 0}) {
		t.Fatalf("ValidCoords = %v, want only (0,0)", got)
	}
}
