// Package observability bundles Prometheus metrics for the session loop and
// exposes them over HTTP. See design doc Section 8.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talgya/warren/internal/session"
)

// Collector holds the session metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	FrameTicks    prometheus.Counter
	Moves         prometheus.Counter
	BlockedMoves  prometheus.Counter
	PredatorTicks prometheus.Counter
	Catches       prometheus.Counter
	Scavenges     prometheus.Counter
	Rescues       prometheus.Counter
	TrapHits      prometheus.Counter

	Score       prometheus.Gauge
	Lives       prometheus.Gauge
	BabyRabbits prometheus.Gauge
}

// NewCollector registers session metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		FrameTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_frame_ticks_total",
			Help: "Total frame ticks processed by the session loop.",
		}),
		Moves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_player_moves_total",
			Help: "Committed player advances.",
		}),
		BlockedMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_player_blocked_moves_total",
			Help: "Player advances rejected by terrain or occupancy.",
		}),
		PredatorTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_predator_ticks_total",
			Help: "Fox decision ticks.",
		}),
		Catches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_catches_total",
			Help: "Times a fox reached the player.",
		}),
		Scavenges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_scavenges_total",
			Help: "Baby rabbits taken by foxes.",
		}),
		Rescues: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_rescues_total",
			Help: "Baby rabbits rescued by the player.",
		}),
		TrapHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warren_trap_hits_total",
			Help: "Hazard decorations sprung by the player.",
		}),
		Score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warren_score",
			Help: "Current session score.",
		}),
		Lives: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warren_lives",
			Help: "Remaining lives.",
		}),
		BabyRabbits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warren_baby_rabbits",
			Help: "Baby rabbits still on the island (neither rescued nor taken).",
		}),
	}

	collectors := []prometheus.Collector{
		c.FrameTicks, c.Moves, c.BlockedMoves, c.PredatorTicks,
		c.Catches, c.Scavenges, c.Rescues, c.TrapHits,
		c.Score, c.Lives, c.BabyRabbits,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Handler serves the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// SessionHooks adapts the collector to the session hook points, chaining any
// hooks already present.
func (c *Collector) SessionHooks(next session.Hooks) session.Hooks {
	return session.Hooks{
		Frame: func() {
			c.FrameTicks.Inc()
			if next.Frame != nil {
				next.Frame()
			}
		},
		Moved: func() {
			c.Moves.Inc()
			if next.Moved != nil {
				next.Moved()
			}
		},
		Blocked: func() {
			c.BlockedMoves.Inc()
			if next.Blocked != nil {
				next.Blocked()
			}
		},
		FoxTick: func() {
			c.PredatorTicks.Inc()
			if next.FoxTick != nil {
				next.FoxTick()
			}
		},
		Sample: func(s session.Sample) {
			c.Score.Set(float64(s.Score))
			c.Lives.Set(float64(s.Lives))
			c.BabyRabbits.Set(float64(s.Rabbits))
			if next.Sample != nil {
				next.Sample(s)
			}
		},
		Event: func(ev session.Event) {
			switch ev.Kind {
			case session.EventCatch:
				c.Catches.Inc()
			case session.EventScavenge:
				c.Scavenges.Inc()
			case session.EventRescue:
				c.Rescues.Inc()
			case session.EventTrap:
				c.TrapHits.Inc()
			}
			if next.Event != nil {
				next.Event(ev)
			}
		},
	}
}
