// Package session owns a single game run: the tick loop, input resolution,
// predator scheduling, and the score/lives ledger.
// See design doc Section 6.
package session

import (
	"math"
	"time"
)

// Penalty multipliers applied to the running score on fox contact events.
// The score is rounded to the nearest integer after each multiplication.
const (
	catchPenalty    = 0.93 // Fox reaches the player (also costs one life)
	scavengePenalty = 0.85 // Fox reaches a baby rabbit
)

// Ledger tracks the score and remaining lives. The score is a running
// countdown: one point lost per whole elapsed second, on top of event-driven
// multiplicative penalties and rescue bonuses. It may go negative — it is
// user-facing only. Lives never drop below zero.
type Ledger struct {
	score     int
	lives     int
	lastWhole int
}

// NewLedger starts the ledger at the configured score and life count.
func NewLedger(startScore, lives int) *Ledger {
	return &Ledger{score: startScore, lives: lives}
}

// TickClock applies time decay for the elapsed session duration. Idempotent
// within the same whole second, so per-frame calls decrement exactly once
// per second: after T quiet seconds the score is start − T.
func (l *Ledger) TickClock(elapsed time.Duration) {
	whole := int(elapsed / time.Second)
	if whole > l.lastWhole {
		l.score -= whole - l.lastWhole
		l.lastWhole = whole
	}
}

// Catch applies the fox-reaches-player penalty: one life lost and the score
// multiplied by 0.93.
func (l *Ledger) Catch() {
	if l.lives > 0 {
		l.lives--
	}
	l.score = int(math.Round(float64(l.score) * catchPenalty))
}

// Scavenge applies the fox-reaches-baby-rabbit penalty: score ×0.85.
func (l *Ledger) Scavenge() {
	l.score = int(math.Round(float64(l.score) * scavengePenalty))
}

// Bonus adds a flat award (rescues).
func (l *Ledger) Bonus(points int) {
	l.score += points
}

// LoseLife removes one life without touching the score (traps).
func (l *Ledger) LoseLife() {
	if l.lives > 0 {
		l.lives--
	}
}

// Score returns the current total score.
func (l *Ledger) Score() int { return l.score }

// Lives returns the remaining life count.
func (l *Ledger) Lives() int { return l.lives }
