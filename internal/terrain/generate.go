// Island generation: square coordinate sweep filtered to a world-space disc,
// simplex height synthesis, band classification, occupancy registration, and
// the decoration pass with joined asset loads.
package terrain

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/warren/internal/grid"
	"github.com/talgya/warren/internal/occupancy"
	"github.com/talgya/warren/internal/render"
)

// GenConfig holds island generation parameters.
type GenConfig struct {
	Radius      float64    // Island radius in world units
	Seed        int64      // 0 = randomize
	WaterLevel  float64    // Waterline as a fraction of MaxHeight (0–1 exclusive)
	MaxHeight   float64    // Peak tile height in world units
	Frequency   float64    // Noise sample frequency
	PlayerSpawn grid.Coord // Never blocked by decorations
}

// DefaultGenConfig returns the standard island.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:     24,
		Seed:       0,
		WaterLevel: 0.2,
		MaxHeight:  3.0,
		Frequency:  0.12,
	}
}

// Validate rejects degenerate configurations at startup rather than letting
// them produce an empty or all-water island at runtime.
func (cfg GenConfig) Validate() error {
	if cfg.Radius <= 0 {
		return fmt.Errorf("terrain: radius must be positive, got %v", cfg.Radius)
	}
	if cfg.WaterLevel <= 0 || cfg.WaterLevel >= 1 {
		return fmt.Errorf("terrain: water level must be in (0,1), got %v", cfg.WaterLevel)
	}
	if cfg.MaxHeight <= 0 {
		return fmt.Errorf("terrain: max height must be positive, got %v", cfg.MaxHeight)
	}
	if cfg.Frequency <= 0 {
		return fmt.Errorf("terrain: frequency must be positive, got %v", cfg.Frequency)
	}
	return nil
}

// Generate builds the island and registers every tile in the occupancy
// registry. Decoration asset loads run as per-tile tasks and are joined
// before Generate returns; a failed load is logged and the decoration —
// including its blocking effect — is omitted.
func Generate(ctx context.Context, cfg GenConfig, reg *occupancy.Registry, assets render.AssetLoader, renderer render.Renderer) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	noise := opensimplex.NewNormalized(seed)

	f := NewField(seed)

	waterHeight := cfg.WaterLevel * cfg.MaxHeight

	// Sweep a square index range wide enough to cover the disc; keep only
	// coordinates whose world position falls inside the island radius.
	nx := int(math.Ceil(cfg.Radius/grid.ColumnSpacing)) + 1
	ny := int(math.Ceil(cfg.Radius/grid.RowSpacing)) + 1

	for y := -ny; y <= ny; y++ {
		for x := -nx; x <= nx; x++ {
			coord := grid.Coord{X: x, Y: y}
			w := grid.ToWorld(coord)
			if math.Hypot(w.X, w.Y) >= cfg.Radius {
				continue
			}

			// Height: normalized simplex sample, power curve biasing the
			// island toward the lower bands, scaled to the peak height.
			n := noise.Eval2(w.X*cfg.Frequency, w.Y*cfg.Frequency)
			height := math.Pow(n, 1.5) * cfg.MaxHeight

			tile := &Tile{
				Coord:    coord,
				World:    w,
				Height:   height,
				Band:     classify(height, cfg.MaxHeight, cfg.WaterLevel),
				Passable: height > waterHeight,
			}

			f.Add(tile)
			reg.Add(coord, tile.Passable)
		}
	}

	if len(f.ordered) == 0 {
		return nil, fmt.Errorf("terrain: radius %v produced no tiles", cfg.Radius)
	}

	placeDecorations(ctx, cfg, f, reg, assets, renderer, seed)

	slog.Info("island generated", "seed", seed, "tiles", len(f.ordered))
	return f, nil
}

// decorationDraw is a single weighted-random decoration decision for a tile.
type decorationDraw struct {
	tile     *Tile
	kind     Decoration
	blocking bool
	assetID  string
}

// drawDecoration rolls the band-specific table for one tile. Thresholds sit
// in the 0.7–0.97 range, so most tiles stay bare.
func drawDecoration(rng *rand.Rand, tile *Tile) (decorationDraw, bool) {
	roll := rng.Float64()
	switch tile.Band {
	case BandStone:
		if roll > 0.97 {
			return decorationDraw{tile, DecorationHazard, false, "hazard_crevice"}, true
		}
		if roll > 0.80 {
			return decorationDraw{tile, DecorationRock, true, "rock_large"}, true
		}
	case BandDirt:
		if roll > 0.82 {
			return decorationDraw{tile, DecorationRock, true, "rock_small"}, true
		}
	case BandGrass:
		if roll > 0.70 {
			return decorationDraw{tile, DecorationTree, true, "tree_pine"}, true
		}
	case BandSand:
		if roll > 0.90 {
			return decorationDraw{tile, DecorationShell, false, "shell"}, true
		}
	}
	return decorationDraw{}, false
}

// placeDecorations runs the per-tile weighted draws (deterministic: its own
// seeded RNG over the sweep order), launches the asset load for each hit,
// and joins every load before returning. Blocking decorations only ever land
// on tiles that were passable at generation time and never on the player
// spawn coordinate.
func placeDecorations(ctx context.Context, cfg GenConfig, f *Field, reg *occupancy.Registry, assets render.AssetLoader, renderer render.Renderer, seed int64) {
	rng := rand.New(rand.NewSource(seed + 1))

	var draws []decorationDraw
	for _, tile := range f.ordered {
		draw, ok := drawDecoration(rng, tile)
		if !ok {
			continue
		}
		if draw.blocking && (!tile.Passable || tile.Coord == cfg.PlayerSpawn) {
			continue
		}
		draws = append(draws, draw)
	}

	if assets == nil {
		// No asset service wired: decorations take effect immediately.
		for _, d := range draws {
			commitDecoration(d, reg, renderer, 0)
		}
		return
	}

	type loaded struct {
		draw   decorationDraw
		handle render.Handle
		err    error
	}

	results := make([]loaded, len(draws))
	var wg sync.WaitGroup
	for i, d := range draws {
		wg.Add(1)
		go func(i int, d decorationDraw) {
			defer wg.Done()
			h, err := assets.Load(ctx, d.assetID)
			results[i] = loaded{draw: d, handle: h, err: err}
		}(i, d)
	}
	wg.Wait()

	placed := 0
	for _, r := range results {
		if r.err != nil {
			slog.Warn("decoration asset load failed, omitting decoration",
				"asset", r.draw.assetID, "coord", r.draw.tile.Coord, "error", r.err)
			continue
		}
		commitDecoration(r.draw, reg, renderer, r.handle)
		placed++
	}
	slog.Info("decorations placed", "placed", placed, "failed", len(draws)-placed)
}

func commitDecoration(d decorationDraw, reg *occupancy.Registry, renderer render.Renderer, h render.Handle) {
	d.tile.Decoration = d.kind
	d.tile.Asset = h
	if d.blocking {
		d.tile.Passable = false
		reg.Block(d.tile.Coord)
	}
	if renderer != nil {
		renderer.Place(h, d.tile.World, d.tile.Height)
	}
}
