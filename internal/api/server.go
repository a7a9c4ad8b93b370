// Package api provides the HTTP API for observing a running session.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
// See design doc Section 9.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/talgya/warren/internal/input"
	"github.com/talgya/warren/internal/observability"
	"github.com/talgya/warren/internal/persistence"
	"github.com/talgya/warren/internal/session"
	"github.com/talgya/warren/internal/terrain"
)

// Server serves session state over HTTP.
type Server struct {
	Sess    *session.Session
	Field   *terrain.Field
	Metrics *observability.Collector
	DB      *persistence.DB

	// Inputs feeds events into the session loop. When an injected input
	// cannot be accepted promptly (channel full, session finished) the
	// handler reports 503 rather than blocking the server.
	Inputs chan<- input.Event

	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Injected inputs steer the player remotely; keep the rate civil.
	inputLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can watch the island).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/sessions", s.handleSessions)

	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics.Handler())
	}

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/input", s.adminOnly(RateLimitMiddleware(inputLimiter, s.handleInput)))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no WARREN_ADMIN_KEY set)", http.StatusForbidden)
				return
			}

			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Sess.Snapshot()

	rescued, remaining := 0, 0
	for _, b := range snap.Babies {
		if b.Rescued {
			rescued++
		} else if b.Alive {
			remaining++
		}
	}

	bands := make(map[string]int)
	for band, n := range s.Field.BandCounts() {
		bands[terrain.BandName(band)] = n
	}

	writeJSON(w, map[string]any{
		"name":        "Warren",
		"tick":        snap.Tick,
		"score":       snap.Score,
		"lives":       snap.Lives,
		"game_over":   snap.Over,
		"rescued":     rescued,
		"remaining":   remaining,
		"player":      snap.Player,
		"fox_count":   len(snap.Foxes),
		"tile_count":  s.Field.Count(),
		"band_counts": bands,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	snap := s.Sess.Snapshot()

	agents := make([]session.AgentView, 0, 1+len(snap.Foxes)+len(snap.Babies))
	agents = append(agents, snap.Player)
	agents = append(agents, snap.Foxes...)
	agents = append(agents, snap.Babies...)

	writeJSON(w, map[string]any{
		"tick":   snap.Tick,
		"agents": agents,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap := s.Sess.Snapshot()

	writeJSON(w, map[string]any{
		"tick":   snap.Tick,
		"events": snap.Events,
	})
}

// handleMap returns every generated tile for the hex map renderer.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	type tileEntry struct {
		X          int     `json:"x"`
		Y          int     `json:"y"`
		Band       string  `json:"band"`
		Height     float64 `json:"height"`
		Passable   bool    `json:"passable"`
		Decoration string  `json:"decoration,omitempty"`
	}

	tiles := make([]tileEntry, 0, s.Field.Count())
	for _, t := range s.Field.Tiles() {
		entry := tileEntry{
			X:        t.Coord.X,
			Y:        t.Coord.Y,
			Band:     terrain.BandName(t.Band),
			Height:   t.Height,
			Passable: t.Passable,
		}
		// Only name the decoration when one exists to keep payload small.
		if t.Decoration != terrain.DecorationNone {
			entry.Decoration = terrain.DecorationName(t.Decoration)
		}
		tiles = append(tiles, entry)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})

	writeJSON(w, map[string]any{
		"tiles": tiles,
	})
}

// handleSessions returns recent session history from the database.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, map[string]any{"sessions": []any{}})
		return
	}

	rows, err := s.DB.RecentSessions(20)
	if err != nil {
		slog.Error("session history query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"sessions": rows,
	})
}

// handleInput injects a player input event into the running session.
// Body: {"event": "rotate_left" | "rotate_right" | "advance"}.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Event string `json:"event"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ev, ok := input.Parse(body.Event)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown input event %q", body.Event), http.StatusBadRequest)
		return
	}

	select {
	case s.Inputs <- ev:
	case <-time.After(250 * time.Millisecond):
		http.Error(w, "session not accepting input", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]any{
		"accepted": true,
		"event":    ev.String(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
