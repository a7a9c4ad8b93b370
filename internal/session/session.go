package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/talgya/warren/internal/agent"
	"github.com/talgya/warren/internal/input"
	"github.com/talgya/warren/internal/occupancy"
	"github.com/talgya/warren/internal/render"
	"github.com/talgya/warren/internal/terrain"
)

// Config holds the per-session gameplay parameters.
type Config struct {
	FrameRate          int           // Display/score ticks per second
	PredatorPeriod     time.Duration // Fox decision interval
	StartScore         int
	StartLives         int
	RescueBonus        int
	FoxRespectsTerrain bool
}

// Event is a notable occurrence, kept in order and forwarded to hooks.
type Event struct {
	Tick   uint64 `json:"tick"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Event kinds emitted by the session.
const (
	EventRescue   = "rescue"
	EventCatch    = "catch"
	EventScavenge = "scavenge"
	EventTrap     = "trap"
	EventGameOver = "game_over"
)

// Sample is a once-per-second telemetry snapshot.
type Sample struct {
	Second   int `csv:"second" json:"second"`
	Score    int `csv:"score" json:"score"`
	Lives    int `csv:"lives" json:"lives"`
	Foxes    int `csv:"foxes" json:"foxes"`
	Rabbits  int `csv:"rabbits_left" json:"rabbits_left"`
	Rescued  int `csv:"rescued" json:"rescued"`
}

// Hooks let observers (metrics, recorder, telemetry) watch the session
// without owning any of its state. All hooks fire on the session goroutine.
type Hooks struct {
	Event   func(Event)
	Sample  func(Sample)
	Frame   func()
	Moved   func()
	Blocked func()
	FoxTick func()
}

// Outcome summarizes a finished session.
type Outcome struct {
	Score    int
	Lives    int
	Rescued  int
	Lost     int // Baby rabbits taken by foxes
	GameOver bool
	Elapsed  time.Duration
	Ticks    uint64
}

// Session is one game run. All fields are owned by the goroutine inside Run;
// the only external communication paths are the input channel, the hooks,
// and the read-only snapshot (which Run publishes under its own lock).
type Session struct {
	cfg    Config
	field  *terrain.Field
	reg    *occupancy.Registry
	player *agent.Agent
	foxes  []*agent.Agent
	babies []*agent.Agent

	mover  *agent.Mover
	ai     *agent.PredatorAI
	ledger *Ledger

	display  render.ScoreDisplay
	renderer render.Renderer
	hooks    Hooks

	tick       uint64
	start      time.Time
	lastSample int
	events     []Event
	over       bool

	snap snapshot
}

// New assembles a session from generated world state and spawned agents.
func New(cfg Config, field *terrain.Field, reg *occupancy.Registry,
	player *agent.Agent, foxes, babies []*agent.Agent,
	display render.ScoreDisplay, renderer render.Renderer, hooks Hooks) *Session {

	if display == nil {
		display = render.LogDisplay{}
	}

	s := &Session{
		cfg:      cfg,
		field:    field,
		reg:      reg,
		player:   player,
		foxes:    foxes,
		babies:   babies,
		mover:    agent.NewMover(reg, player),
		ai:       agent.NewPredatorAI(reg, cfg.FoxRespectsTerrain),
		ledger:   NewLedger(cfg.StartScore, cfg.StartLives),
		display:  display,
		renderer: renderer,
		hooks:    hooks,
	}
	s.publishSnapshot()
	return s
}

// Run drives the session until game over or context cancellation. One
// goroutine owns every piece of mutable state: input events, frame ticks,
// and predator ticks are serialized through a single select, so a movement
// event always resolves fully (rescue and trap checks included) before the
// next event, and predator ticks never observe a half-committed move.
func (s *Session) Run(ctx context.Context, inputs <-chan input.Event) Outcome {
	frame := time.NewTicker(time.Second / time.Duration(s.cfg.FrameRate))
	defer frame.Stop()
	predator := time.NewTicker(s.cfg.PredatorPeriod)
	defer predator.Stop()

	s.start = time.Now()
	slog.Info("session started",
		"foxes", len(s.foxes), "baby_rabbits", len(s.babies),
		"score", s.ledger.Score(), "lives", s.ledger.Lives())

	for {
		select {
		case <-ctx.Done():
			return s.finish(false)
		case ev, ok := <-inputs:
			if !ok {
				return s.finish(false)
			}
			s.handleInput(ev)
		case <-frame.C:
			s.frameTick()
		case <-predator.C:
			s.predatorTick()
		}
		if s.over {
			return s.finish(true)
		}
	}
}

// handleInput resolves one discrete player event to completion.
func (s *Session) handleInput(ev input.Event) {
	switch ev {
	case input.RotateLeft:
		s.mover.RotateLeft()
	case input.RotateRight:
		s.mover.RotateRight()
	case input.Advance:
		res := s.mover.Advance()
		if !res.Moved {
			// Silent rollback: no user-visible error for a rejected move.
			// Spawn reservations keep baby tiles unenterable, so a walk
			// into a baby rabbit lands here — it still counts as reaching
			// it, so the rescue check runs on this path too.
			s.fire(s.hooks.Blocked)
			s.rescueCheck()
			break
		}
		s.fire(s.hooks.Moved)
		s.rescueCheck()
		s.trapCheck()
	}
	s.publishSnapshot()
}

// rescueCheck rescues any baby rabbit the player has reached. Spawn
// reservations keep agents on distinct tiles, so "reached" means same tile
// or adjacent.
func (s *Session) rescueCheck() {
	for _, b := range s.babies {
		if !b.Alive || b.Rescued {
			continue
		}
		if agent.Adjacent(s.player, b) {
			b.Rescued = true
			s.ledger.Bonus(s.cfg.RescueBonus)
			s.record(EventRescue, "baby rabbit rescued at "+coordStr(b.Coord))
		}
	}
}

// trapCheck fires the hazard on the player's tile, if any. Hazards are
// one-shot: the decoration is consumed.
func (s *Session) trapCheck() {
	tile := s.field.Get(s.player.Coord)
	if tile == nil || tile.Decoration != terrain.DecorationHazard {
		return
	}
	tile.Decoration = terrain.DecorationNone
	if s.renderer != nil {
		s.renderer.Remove(tile.Asset)
	}
	s.ledger.LoseLife()
	s.record(EventTrap, "player hit a trap at "+coordStr(tile.Coord))
	if s.ledger.Lives() == 0 {
		s.gameOver()
	}
}

// predatorTick runs the fox policy once, then resolves collisions with the
// single symmetric same-tile predicate.
func (s *Session) predatorTick() {
	s.fire(s.hooks.FoxTick)
	s.ai.Step(s.activeFoxes(), s.player)

	for _, fox := range s.foxes {
		if !fox.Alive {
			continue
		}
		if agent.SameTile(fox, s.player) {
			s.ledger.Catch()
			s.record(EventCatch, "fox caught the player at "+coordStr(fox.Coord))
			if s.ledger.Lives() == 0 {
				s.gameOver()
				break
			}
		}
		for _, b := range s.babies {
			if b.Alive && !b.Rescued && agent.SameTile(fox, b) {
				b.Alive = false
				s.ledger.Scavenge()
				s.record(EventScavenge, "fox took a baby rabbit at "+coordStr(b.Coord))
			}
		}
	}
	s.publishSnapshot()
}

// frameTick applies score decay and pushes the score line to the display.
func (s *Session) frameTick() {
	s.tick++
	s.fire(s.hooks.Frame)
	elapsed := time.Since(s.start)
	s.ledger.TickClock(elapsed)
	s.display.Show(s.ledger.Score(), s.ledger.Lives())

	if sec := int(elapsed / time.Second); sec > s.lastSample {
		s.lastSample = sec
		if s.hooks.Sample != nil {
			s.hooks.Sample(s.sample(sec))
		}
	}
	s.publishSnapshot()
}

func (s *Session) gameOver() {
	s.over = true
	s.record(EventGameOver, "no lives remaining")
}

func (s *Session) finish(gameOver bool) Outcome {
	out := Outcome{
		Score:    s.ledger.Score(),
		Lives:    s.ledger.Lives(),
		GameOver: gameOver,
		Elapsed:  time.Since(s.start),
		Ticks:    s.tick,
	}
	for _, b := range s.babies {
		if b.Rescued {
			out.Rescued++
		} else if !b.Alive {
			out.Lost++
		}
	}
	slog.Info("session finished",
		"score", out.Score, "lives", out.Lives,
		"rescued", out.Rescued, "lost", out.Lost, "game_over", out.GameOver)
	return out
}

func (s *Session) activeFoxes() []*agent.Agent {
	out := make([]*agent.Agent, 0, len(s.foxes))
	for _, f := range s.foxes {
		if f.Alive {
			out = append(out, f)
		}
	}
	return out
}

func (s *Session) sample(sec int) Sample {
	rescued, left := 0, 0
	for _, b := range s.babies {
		switch {
		case b.Rescued:
			rescued++
		case b.Alive:
			left++
		}
	}
	return Sample{
		Second:  sec,
		Score:   s.ledger.Score(),
		Lives:   s.ledger.Lives(),
		Foxes:   len(s.activeFoxes()),
		Rabbits: left,
		Rescued: rescued,
	}
}

func (s *Session) record(kind, detail string) {
	ev := Event{Tick: s.tick, Kind: kind, Detail: detail}
	s.events = append(s.events, ev)
	slog.Info("session event", "kind", kind, "detail", detail, "tick", s.tick)
	if s.hooks.Event != nil {
		s.hooks.Event(ev)
	}
}

func (s *Session) fire(h func()) {
	if h != nil {
		h()
	}
}
