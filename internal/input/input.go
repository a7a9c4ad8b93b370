// Package input delivers discrete player events to the session. The event
// set is closed: rotate left, rotate right, advance.
// See design doc Section 13.
package input

import (
	"bufio"
	"context"
	"io"
	"log/slog"
)

// Event is a discrete player action.
type Event uint8

const (
	RotateLeft Event = iota
	RotateRight
	Advance
)

// String returns the event name for logs and the admin API.
func (e Event) String() string {
	switch e {
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case Advance:
		return "advance"
	default:
		return "unknown"
	}
}

// Parse maps an event name (admin API) or key (terminal: a/d/w) to an event.
func Parse(s string) (Event, bool) {
	switch s {
	case "rotate_left", "a":
		return RotateLeft, true
	case "rotate_right", "d":
		return RotateRight, true
	case "advance", "w":
		return Advance, true
	default:
		return 0, false
	}
}

// ReadKeys scans lines from r (one key per line: a, d, w) and forwards
// events until r closes or ctx is cancelled. Unknown keys are ignored.
// Intended for interactive terminal sessions; runs in its own goroutine.
func ReadKeys(ctx context.Context, r io.Reader, out chan<- Event) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ev, ok := Parse(scanner.Text())
		if !ok {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("input reader stopped", "error", err)
	}
}
