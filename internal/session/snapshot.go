package session

import (
	"fmt"
	"sync"

	"github.com/talgya/warren/internal/agent"
	"github.com/talgya/warren/internal/grid"
)

// maxSnapshotEvents bounds the event tail carried in each snapshot.
const maxSnapshotEvents = 50

// AgentView is the read-only agent projection served by the API.
type AgentView struct {
	Kind    string     `json:"kind"`
	Coord   grid.Coord `json:"coord"`
	World   grid.World `json:"world"`
	Heading string     `json:"heading,omitempty"`
	Rescued bool       `json:"rescued,omitempty"`
	Alive   bool       `json:"alive"`
}

// StatusSnapshot is a consistent view of the session state, published by the
// session goroutine after every state change and safe to read from any
// goroutine (the API server polls it).
type StatusSnapshot struct {
	Tick   uint64      `json:"tick"`
	Score  int         `json:"score"`
	Lives  int         `json:"lives"`
	Over   bool        `json:"game_over"`
	Player AgentView   `json:"player"`
	Foxes  []AgentView `json:"foxes"`
	Babies []AgentView `json:"baby_rabbits"`
	Events []Event     `json:"events"`
}

type snapshot struct {
	mu   sync.RWMutex
	data StatusSnapshot
}

// Snapshot returns the most recently published session state.
func (s *Session) Snapshot() StatusSnapshot {
	s.snap.mu.RLock()
	defer s.snap.mu.RUnlock()
	return s.snap.data
}

// publishSnapshot rebuilds the shared view. Called only from the session
// goroutine, after state has fully settled.
func (s *Session) publishSnapshot() {
	view := StatusSnapshot{
		Tick:   s.tick,
		Score:  s.ledger.Score(),
		Lives:  s.ledger.Lives(),
		Over:   s.over,
		Player: agentView(s.player),
	}
	for _, f := range s.foxes {
		view.Foxes = append(view.Foxes, agentView(f))
	}
	for _, b := range s.babies {
		view.Babies = append(view.Babies, agentView(b))
	}
	tail := s.events
	if len(tail) > maxSnapshotEvents {
		tail = tail[len(tail)-maxSnapshotEvents:]
	}
	view.Events = append([]Event(nil), tail...)

	s.snap.mu.Lock()
	s.snap.data = view
	s.snap.mu.Unlock()
}

func agentView(a *agent.Agent) AgentView {
	v := AgentView{
		Kind:    agent.KindName(a.Kind),
		Coord:   a.Coord,
		World:   a.World,
		Rescued: a.Rescued,
		Alive:   a.Alive,
	}
	if a.Kind == agent.KindPlayer {
		v.Heading = a.Heading.String()
	}
	return v
}

func coordStr(c grid.Coord) string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
