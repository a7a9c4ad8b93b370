package terrain

import (
	"context"
	"math"
	"testing"

	"github.com/talgya/warren/internal/occupancy"
	"github.com/talgya/warren/internal/render"
)

func testConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Radius = 12
	cfg.Seed = 42
	return cfg
}

func mustGenerate(t *testing.T, cfg GenConfig) (*Field, *occupancy.Registry) {
	t.Helper()
	reg := occupancy.NewRegistry()
	f, err := Generate(context.Background(), cfg, reg, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return f, reg
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := mustGenerate(t, testConfig())
	b, _ := mustGenerate(t, testConfig())

	if a.Count() != b.Count() {
		t.Fatalf("tile counts differ: %d vs %d", a.Count(), b.Count())
	}
	for _, ta := range a.Tiles() {
		tb := b.Get(ta.Coord)
		if tb == nil {
			t.Fatalf("tile %v missing from second generation", ta.Coord)
		}
		if ta.Height != tb.Height || ta.Band != tb.Band || ta.Passable != tb.Passable || ta.Decoration != tb.Decoration {
			t.Fatalf("tile %v differs between runs: %+v vs %+v", ta.Coord, ta, tb)
		}
	}
}

func TestGenerateCircularIsland(t *testing.T) {
	cfg := testConfig()
	f, _ := mustGenerate(t, cfg)

	if f.Count() == 0 {
		t.Fatal("no tiles generated")
	}
	for _, tile := range f.Tiles() {
		if d := math.Hypot(tile.World.X, tile.World.Y); d >= cfg.Radius {
			t.Errorf("tile %v at world distance %v, outside radius %v", tile.Coord, d, cfg.Radius)
		}
	}
}

func TestWaterTilesImpassable(t *testing.T) {
	cfg := testConfig()
	f, reg := mustGenerate(t, cfg)

	waterHeight := cfg.WaterLevel * cfg.MaxHeight
	for _, tile := range f.Tiles() {
		wantPassable := tile.Height > waterHeight
		if tile.Decoration == DecorationRock || tile.Decoration == DecorationTree {
			wantPassable = false
		}
		if tile.Passable != wantPassable {
			t.Errorf("tile %v passable=%v, want %v (height %v)", tile.Coord, tile.Passable, wantPassable, tile.Height)
		}
		if tile.Height <= waterHeight && reg.Passable(tile.Coord) {
			t.Errorf("water tile %v passable in registry", tile.Coord)
		}
	}
}

func TestRegistryMatchesField(t *testing.T) {
	f, reg := mustGenerate(t, testConfig())

	if reg.Count() != f.Count() {
		t.Fatalf("registry has %d tiles, field has %d", reg.Count(), f.Count())
	}
	for _, tile := range f.Tiles() {
		if !reg.Exists(tile.Coord) {
			t.Errorf("tile %v not registered", tile.Coord)
		}
		if reg.Passable(tile.Coord) != tile.Passable {
			t.Errorf("tile %v passability mismatch", tile.Coord)
		}
	}
}

// Classification must be monotonic: raising height never lowers the band.
func TestClassifyMonotonic(t *testing.T) {
	cfg := testConfig()
	prev := BandBase
	for h := 0.0; h <= cfg.MaxHeight; h += cfg.MaxHeight / 500 {
		b := classify(h, cfg.MaxHeight, cfg.WaterLevel)
		if b < prev {
			t.Fatalf("band dropped from %v to %v at height %v", prev, b, h)
		}
		prev = b
	}
}

func TestClassifyThresholds(t *testing.T) {
	const maxH, water = 10.0, 0.2
	tests := []struct {
		height float64
		want   Band
	}{
		{9.5, BandStone},
		{8.0, BandStone},
		{7.0, BandDirt},
		{6.5, BandDirt},
		{5.0, BandGrass},
		{3.5, BandGrass},
		{3.0, BandSand},
		{2.3, BandSand},
		{2.1, BandBase},
		{1.0, BandBase},
	}
	for _, tt := range tests {
		if got := classify(tt.height, maxH, water); got != tt.want {
			t.Errorf("classify(%v) = %s, want %s", tt.height, BandName(got), BandName(tt.want))
		}
	}
}

func TestPlayerSpawnNeverBlocked(t *testing.T) {
	cfg := testConfig()
	f, _ := mustGenerate(t, cfg)

	spawn := f.Get(cfg.PlayerSpawn)
	if spawn == nil {
		t.Fatal("player spawn tile not generated")
	}
	if spawn.Decoration == DecorationRock || spawn.Decoration == DecorationTree {
		t.Fatalf("blocking decoration %v on player spawn", spawn.Decoration)
	}
}

func TestHazardsStayPassable(t *testing.T) {
	f, reg := mustGenerate(t, testConfig())
	for _, tile := range f.Tiles() {
		if tile.Decoration == DecorationHazard && !reg.Passable(tile.Coord) {
			t.Errorf("hazard tile %v became impassable", tile.Coord)
		}
	}
}

// A failed asset load must omit the decoration entirely, including its
// blocking effect.
func TestFailedAssetLoadOmitsDecoration(t *testing.T) {
	cfg := testConfig()
	reg := occupancy.NewRegistry()
	// Empty catalog: every load fails.
	f, err := Generate(context.Background(), cfg, reg, render.StaticAssets{}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, tile := range f.Tiles() {
		if tile.Decoration != DecorationNone {
			t.Errorf("tile %v decorated despite failed load", tile.Coord)
		}
		waterHeight := cfg.WaterLevel * cfg.MaxHeight
		if wantPassable := tile.Height > waterHeight; tile.Passable != wantPassable {
			t.Errorf("tile %v passability changed despite failed load", tile.Coord)
		}
	}
}

func TestSuccessfulAssetLoadsDecorate(t *testing.T) {
	cfg := testConfig()
	reg := occupancy.NewRegistry()
	f, err := Generate(context.Background(), cfg, reg, &render.NullAssets{}, render.LogRenderer{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	decorated := 0
	for _, tile := range f.Tiles() {
		if tile.Decoration != DecorationNone {
			decorated++
		}
	}
	if decorated == 0 {
		t.Fatal("no decorations placed on a radius-12 island")
	}
}

func TestValidateRejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenConfig)
	}{
		{"zero radius", func(c *GenConfig) { c.Radius = 0 }},
		{"negative radius", func(c *GenConfig) { c.Radius = -5 }},
		{"water level zero", func(c *GenConfig) { c.WaterLevel = 0 }},
		{"water level one", func(c *GenConfig) { c.WaterLevel = 1 }},
		{"zero max height", func(c *GenConfig) { c.MaxHeight = 0 }},
		{"zero frequency", func(c *GenConfig) { c.Frequency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGenConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}
