package grid

import (
	"math"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	coords := []Coord{
		{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1},
		{-7, 13}, {13, -7}, {9999, -9999}, {-20000, 20000},
	}
	for _, c := range coords {
		if got := FromKey(c.Key()); got != c {
			t.Errorf("FromKey(Key(%v)) = %v", c, got)
		}
	}
}

// The packed key must be a true bijection: the source game's x*10000+y
// encoding aliased for negative y, so injectivity is load-bearing here.
func TestKeyInjective(t *testing.T) {
	seen := make(map[uint64]Coord)
	for x := -60; x <= 60; x++ {
		for y := -60; y <= 60; y++ {
			c := Coord{X: x, Y: y}
			k := c.Key()
			if prev, ok := seen[k]; ok {
				t.Fatalf("key collision: %v and %v both map to %d", prev, c, k)
			}
			seen[k] = c
		}
	}
}

func TestToWorldFormula(t *testing.T) {
	tests := []struct {
		coord Coord
		wantX float64
		wantY float64
	}{
		{Coord{0, 0}, 0, 0},
		{Coord{2, 0}, 2 * ColumnSpacing, 0},
		{Coord{0, 1}, 0.5 * ColumnSpacing, RowSpacing},
		{Coord{3, 2}, 3 * ColumnSpacing, 2 * RowSpacing},
		{Coord{-1, -1}, -0.5 * ColumnSpacing, -RowSpacing},
		{Coord{0, -2}, 0, -2 * RowSpacing},
	}
	for _, tt := range tests {
		w := ToWorld(tt.coord)
		if math.Abs(w.X-tt.wantX) > 1e-9 || math.Abs(w.Y-tt.wantY) > 1e-9 {
			t.Errorf("ToWorld(%v) = (%v, %v), want (%v, %v)", tt.coord, w.X, w.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestToWorldInjective(t *testing.T) {
	type pos struct{ x, y float64 }
	seen := make(map[pos]Coord)
	for x := -30; x <= 30; x++ {
		for y := -30; y <= 30; y++ {
			c := Coord{X: x, Y: y}
			w := ToWorld(c)
			p := pos{math.Round(w.X * 1e6), math.Round(w.Y * 1e6)}
			if prev, ok := seen[p]; ok {
				t.Fatalf("world-space collision: %v and %v", prev, c)
			}
			seen[p] = c
		}
	}
}

// All six neighbors of any tile must sit at the same world distance — that is
// what makes the parity-dependent offset table a valid hex adjacency.
func TestNeighborsEquidistant(t *testing.T) {
	want := Dist(ToWorld(Coord{0, 0}), ToWorld(Coord{1, 0}))
	for _, c := range []Coord{{0, 0}, {0, 1}, {-3, 4}, {5, -2}, {2, 7}} {
		w := ToWorld(c)
		for _, n := range c.Neighbors() {
			if d := Dist(w, ToWorld(n)); math.Abs(d-want) > 1e-9 {
				t.Errorf("neighbor %v of %v at distance %v, want %v", n, c, d, want)
			}
		}
	}
}

func TestNeighborsSymmetric(t *testing.T) {
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			c := Coord{X: x, Y: y}
			for _, n := range c.Neighbors() {
				found := false
				for _, back := range n.Neighbors() {
					if back == c {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("adjacency not symmetric: %v -> %v", c, n)
				}
			}
		}
	}
}

func TestHeadingDeltaMatchesNeighbors(t *testing.T) {
	for _, c := range []Coord{{0, 0}, {0, 1}} {
		neighbors := c.Neighbors()
		for i, h := range Headings {
			got := c.Add(h.Delta(c.RowParity()))
			if got != neighbors[i] {
				t.Errorf("c=%v heading %v: Delta gives %v, Neighbors gives %v", c, h, got, neighbors[i])
			}
		}
	}
}

func TestHeadingEastWestParityIndependent(t *testing.T) {
	for _, h := range []Heading{HeadingE, HeadingW} {
		if h.Delta(0) != h.Delta(1) {
			t.Errorf("heading %v delta differs by parity: %v vs %v", h, h.Delta(0), h.Delta(1))
		}
	}
}

func TestTurnClosure(t *testing.T) {
	for _, start := range Headings {
		h := start
		for i := 0; i < 6; i++ {
			h = h.TurnLeft()
		}
		if h != start {
			t.Errorf("six left turns from %v end at %v", start, h)
		}
		h = start
		for i := 0; i < 6; i++ {
			h = h.TurnRight()
		}
		if h != start {
			t.Errorf("six right turns from %v end at %v", start, h)
		}
	}
}

func TestTurnInverse(t *testing.T) {
	for _, start := range Headings {
		if got := start.TurnLeft().TurnRight(); got != start {
			t.Errorf("TurnLeft then TurnRight from %v = %v", start, got)
		}
	}
}
