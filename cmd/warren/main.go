// Command warren runs the island survival session: a rabbit, its lost
// babies, and the foxes between them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/talgya/warren/internal/agent"
	"github.com/talgya/warren/internal/api"
	"github.com/talgya/warren/internal/config"
	"github.com/talgya/warren/internal/entropy"
	"github.com/talgya/warren/internal/input"
	"github.com/talgya/warren/internal/observability"
	"github.com/talgya/warren/internal/occupancy"
	"github.com/talgya/warren/internal/persistence"
	"github.com/talgya/warren/internal/render"
	"github.com/talgya/warren/internal/session"
	"github.com/talgya/warren/internal/telemetry"
	"github.com/talgya/warren/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config overlaying the defaults")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Seed ──────────────────────────────────────────────────────────
	seed := cfg.World.Seed
	if seed == 0 {
		seed = entropy.Seed()
		slog.Info("minted world seed", "seed", seed)
	} else {
		slog.Info("using configured world seed", "seed", seed)
	}

	// ── Database (optional — empty path disables the recorder) ────────
	var db *persistence.DB
	if cfg.Recorder.Path != "" {
		db, err = persistence.Open(cfg.Recorder.Path)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.Recorder.Path)
	}

	// ── Island ────────────────────────────────────────────────────────
	slog.Info("generating island...")
	genCfg := cfg.GenConfig()
	genCfg.Seed = seed

	reg := occupancy.NewRegistry()
	assets := &render.NullAssets{}
	renderer := render.LogRenderer{}

	field, err := terrain.Generate(ctx, genCfg, reg, assets, renderer)
	if err != nil {
		slog.Error("island generation failed", "error", err)
		os.Exit(1)
	}
	for band, n := range field.BandCounts() {
		slog.Info("terrain", "band", terrain.BandName(band), "count", n)
	}

	// ── Agents ────────────────────────────────────────────────────────
	spawner := agent.NewSpawner(entropy.Derive(seed, 3), reg)

	player, err := spawner.SpawnNear(agent.KindPlayer, genCfg.PlayerSpawn)
	if err != nil {
		slog.Error("no spawnable tile for player", "error", err)
		os.Exit(1)
	}

	var foxes []*agent.Agent
	for i := 0; i < cfg.FoxCount(); i++ {
		fox, err := spawner.Spawn(agent.KindFox)
		if err != nil {
			slog.Warn("fox spawn failed, island too small", "error", err)
			break
		}
		foxes = append(foxes, fox)
	}

	var babies []*agent.Agent
	for i := 0; i < cfg.BabyRabbitCount(); i++ {
		baby, err := spawner.Spawn(agent.KindBabyRabbit)
		if err != nil {
			slog.Warn("baby rabbit spawn failed, island too small", "error", err)
			break
		}
		babies = append(babies, baby)
	}

	slog.Info("island ready",
		"tiles", field.Count(),
		"player", player.Coord,
		"foxes", len(foxes),
		"baby_rabbits", len(babies),
	)

	// ── Observers ─────────────────────────────────────────────────────
	var base session.Hooks

	var recorder *persistence.Recorder
	if db != nil {
		recorder, err = db.BeginSession(seed)
		if err != nil {
			slog.Error("failed to begin session record", "error", err)
			os.Exit(1)
		}
		base.Event = recorder.RecordEvent
	}

	var telem *telemetry.Recorder
	if cfg.Telem.CSVPath != "" {
		telem = telemetry.NewRecorder(cfg.Telem.CSVPath)
		base.Sample = telem.Record
	}

	collector, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		slog.Error("failed to build metrics collector", "error", err)
		os.Exit(1)
	}

	hooks := collector.SessionHooks(base)

	// ── Session ───────────────────────────────────────────────────────
	sess := session.New(cfg.SessionConfig(), field, reg, player, foxes, babies,
		render.LogDisplay{}, renderer, hooks)

	inputs := make(chan input.Event, 16)
	go input.ReadKeys(ctx, os.Stdin, inputs)

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := cfg.API.AdminKey
	if adminKey == "" {
		adminKey = os.Getenv("WARREN_ADMIN_KEY")
	}
	if adminKey == "" {
		slog.Warn("WARREN_ADMIN_KEY not set — admin POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		Sess:     sess,
		Field:    field,
		Metrics:  collector,
		DB:       db,
		Inputs:   inputs,
		Port:     cfg.API.Port,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Run ───────────────────────────────────────────────────────────
	fmt.Printf("\nThe island is awake: %d baby rabbits to find, %d foxes hunting.\n",
		len(babies), len(foxes))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.API.Port)
	fmt.Println("Controls: a/left, d/right, w/advance (newline-terminated). Ctrl+C to stop.")

	out := sess.Run(ctx, inputs)

	// ── Wrap up ───────────────────────────────────────────────────────
	if recorder != nil {
		if err := recorder.Finish(out); err != nil {
			slog.Error("failed to finalize session record", "error", err)
		}
	}
	if telem != nil {
		if err := telem.Flush(); err != nil {
			slog.Error("telemetry flush failed", "error", err)
		}
	}

	verdict := "The rabbit made it out."
	if out.GameOver {
		verdict = "The foxes won this time."
	}
	fmt.Printf("\n%s Final score %s after %s ticks (%s): %d rescued, %d lost, %d lives left.\n",
		verdict,
		humanize.Comma(int64(out.Score)),
		humanize.Comma(int64(out.Ticks)),
		out.Elapsed.Round(100*time.Millisecond),
		out.Rescued, out.Lost, out.Lives)
}

// setupLogging installs the default slog handler per config.
func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
