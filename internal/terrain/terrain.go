// Package terrain synthesizes the island: a deterministic-from-seed height
// field over the hex grid, bucketed into terrain bands, with passability and
// a decoration pass. See design doc Section 3.
package terrain

import (
	"github.com/talgya/warren/internal/grid"
	"github.com/talgya/warren/internal/render"
)

// Band classifies a tile by height.
type Band uint8

const (
	BandBase  Band = iota // Shallow seabed fringe just above the waterline
	BandSand              // Beaches
	BandGrass             // Meadows — most of the playable island
	BandDirt              // Upland soil
	BandStone             // Peaks
)

// Band thresholds as fractions of the maximum height. Classification is
// monotonic: raising a tile's height can only move it to a higher band.
const (
	stoneFrac = 0.80
	dirtFrac  = 0.65
	grassFrac = 0.35
	sandEps   = 0.02 // Sand starts just above the waterline
)

// Decoration is a static prop placed on a tile during generation.
type Decoration uint8

const (
	DecorationNone   Decoration = iota
	DecorationRock              // Blocking
	DecorationTree              // Blocking
	DecorationShell             // Cosmetic
	DecorationHazard            // Trap — passable, costs a life on entry
)

// Tile is a generated island cell. Height and band are immutable after
// generation; passability may be flipped once by a blocking decoration.
type Tile struct {
	Coord      grid.Coord    `json:"coord"`
	World      grid.World    `json:"world"`
	Height     float64       `json:"height"`
	Band       Band          `json:"band"`
	Passable   bool          `json:"passable"`
	Decoration Decoration    `json:"decoration,omitempty"`
	Asset      render.Handle `json:"-"`
}

// Field holds the complete generated island.
type Field struct {
	tiles   map[uint64]*Tile
	ordered []*Tile // Sweep order — deterministic iteration for passes
	Seed    int64
}

// NewField creates an empty field.
func NewField(seed int64) *Field {
	return &Field{
		tiles: make(map[uint64]*Tile),
		Seed:  seed,
	}
}

// Add inserts a tile, overwriting any previous tile at the same coordinate.
func (f *Field) Add(t *Tile) {
	if _, exists := f.tiles[t.Coord.Key()]; !exists {
		f.ordered = append(f.ordered, t)
	}
	f.tiles[t.Coord.Key()] = t
}

// Get returns the tile at the coordinate, or nil if none was generated.
func (f *Field) Get(c grid.Coord) *Tile {
	return f.tiles[c.Key()]
}

// Count returns the number of generated tiles.
func (f *Field) Count() int {
	return len(f.tiles)
}

// Tiles returns all tiles in generation sweep order.
func (f *Field) Tiles() []*Tile {
	return f.ordered
}

// BandCounts returns the distribution of tiles across bands.
func (f *Field) BandCounts() map[Band]int {
	counts := make(map[Band]int)
	for _, t := range f.ordered {
		counts[t.Band]++
	}
	return counts
}

// classify buckets a height into a band. waterFrac is the waterline as a
// fraction of maxHeight.
func classify(height, maxHeight, waterFrac float64) Band {
	h := height / maxHeight
	switch {
	case h >= stoneFrac:
		return BandStone
	case h >= dirtFrac:
		return BandDirt
	case h >= grassFrac:
		return BandGrass
	case h > waterFrac+sandEps:
		return BandSand
	default:
		return BandBase
	}
}

// BandName returns a human-readable name for a band.
func BandName(b Band) string {
	switch b {
	case BandStone:
		return "Stone"
	case BandDirt:
		return "Dirt"
	case BandGrass:
		return "Grass"
	case BandSand:
		return "Sand"
	case BandBase:
		return "Base"
	default:
		return "Unknown"
	}
}

// DecorationName returns a human-readable name for a decoration.
func DecorationName(d Decoration) string {
	switch d {
	case DecorationRock:
		return "Rock"
	case DecorationTree:
		return "Tree"
	case DecorationShell:
		return "Shell"
	case DecorationHazard:
		return "Hazard"
	default:
		return "None"
	}
}
