// Package render declares the collaborator interfaces the simulation core
// calls into: mesh presentation, asset loading, and score display. The core
// supplies world positions and handles only and never touches pixels.
// See design doc Section 13.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/talgya/warren/internal/grid"
)

// Handle is an opaque reference to a loaded asset (geometry, texture).
type Handle uint64

// Renderer opaquely displays a handle at a world position and height.
type Renderer interface {
	Place(h Handle, pos grid.World, height float64)
	Remove(h Handle)
}

// AssetLoader resolves asset IDs to handles. Loads may be slow; callers treat
// each load as an explicit task and join before relying on the result.
type AssetLoader interface {
	Load(ctx context.Context, assetID string) (Handle, error)
}

// ScoreDisplay receives the score and lives once per frame for presentation.
type ScoreDisplay interface {
	Show(score, lives int)
}

// LogRenderer logs placements at debug level instead of drawing. The default
// backend for headless runs.
type LogRenderer struct{}

func (LogRenderer) Place(h Handle, pos grid.World, height float64) {
	slog.Debug("render place", "handle", h, "x", pos.X, "y", pos.Y, "height", height)
}

func (LogRenderer) Remove(h Handle) {
	slog.Debug("render remove", "handle", h)
}

// StaticAssets serves handles from a fixed table. Unknown IDs fail, which
// exercises the degraded path: the caller logs and omits the decoration.
type StaticAssets struct {
	Handles map[string]Handle
}

func (a StaticAssets) Load(ctx context.Context, assetID string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	h, ok := a.Handles[assetID]
	if !ok {
		return 0, fmt.Errorf("load asset %q: unknown asset id", assetID)
	}
	return h, nil
}

// NullAssets hands out sequential handles for every ID. Useful when no asset
// catalog is wired. Safe for concurrent loads.
type NullAssets struct {
	mu   sync.Mutex
	next Handle
}

func (a *NullAssets) Load(ctx context.Context, assetID string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	return a.next, nil
}

// LogDisplay writes the score line to the structured log once per frame.
type LogDisplay struct{}

func (LogDisplay) Show(score, lives int) {
	slog.Debug("score display", "score", score, "lives", lives)
}
