// Package grid provides the hex grid addressing model: offset-row coordinates,
// world-space projection, and parity-aware adjacency.
// Odd rows sit half a column to the right of even rows, so the neighbor offset
// table depends on row parity. See design doc Section 2.
package grid

import "math"

// Coord is a tile address on the offset-row hex grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// World is a planar world-space position derived from a Coord.
type World struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Spacing between tile centers for unit pointy-top hexes.
var (
	ColumnSpacing = math.Sqrt(3.0)
	RowSpacing    = 1.5
)

// RowParity returns 0 for even rows and 1 for odd rows.
// Bitwise AND keeps the result non-negative for negative Y.
func (c Coord) RowParity() int {
	return c.Y & 1
}

// Key packs a Coord into a single uint64. Each axis is zig-zag encoded into
// 32 bits, so the mapping is a true bijection over the full int32 range —
// distinct coordinates never collide, including negative ones.
func (c Coord) Key() uint64 {
	zx := uint32((int32(c.X) << 1) ^ (int32(c.X) >> 31))
	zy := uint32((int32(c.Y) << 1) ^ (int32(c.Y) >> 31))
	return uint64(zx)<<32 | uint64(zy)
}

// FromKey recovers the Coord packed by Key.
func FromKey(k uint64) Coord {
	zx := uint32(k >> 32)
	zy := uint32(k)
	return Coord{
		X: int(int32(zx>>1) ^ -int32(zx&1)),
		Y: int(int32(zy>>1) ^ -int32(zy&1)),
	}
}

// ToWorld projects a Coord to world space. Pure function of the coordinate:
// odd rows are shifted half a column width to the right.
func ToWorld(c Coord) World {
	return World{
		X: (float64(c.X) + float64(c.RowParity())*0.5) * ColumnSpacing,
		Y: float64(c.Y) * RowSpacing,
	}
}

// Dist returns the Euclidean distance between two world positions.
func Dist(a, b World) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// neighborOffsets holds the six adjacency deltas per row parity, ordered by
// heading (E, NE, NW, W, SW, SE). East and West are parity-independent; the
// four diagonals differ because odd rows are offset in world space.
var neighborOffsets = [2][6]Coord{
	{ // even rows
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 1},
		{X: -1, Y: 0},
		{X: -1, Y: -1},
		{X: 0, Y: -1},
	},
	{ // odd rows
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 1, Y: -1},
	},
}

// Neighbors returns the six adjacent coordinates. No bounds checking here;
// coordinates outside the generated island fail existence checks downstream.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, d := range neighborOffsets[c.RowParity()] {
		result[i] = Coord{X: c.X + d.X, Y: c.Y + d.Y}
	}
	return result
}

// Add returns the coordinate shifted by the given delta.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}
