package agent

import (
	"github.com/talgya/warren/internal/grid"
	"github.com/talgya/warren/internal/occupancy"
)

// MoveResult reports what an advance attempt did. Computed against the
// occupancy registry; the move is already committed (or rolled back) when
// the result is returned.
type MoveResult struct {
	Moved bool
	From  grid.Coord
	To    grid.Coord
}

// Mover is the player movement state machine: state is the player's
// coordinate plus facing, transitions are rotate and advance events.
type Mover struct {
	reg    *occupancy.Registry
	player *Agent
}

// NewMover creates the movement controller for the player.
func NewMover(reg *occupancy.Registry, player *Agent) *Mover {
	return &Mover{reg: reg, player: player}
}

// RotateLeft turns the player 60° counterclockwise. Coordinate unchanged.
func (m *Mover) RotateLeft() {
	m.player.Heading = m.player.Heading.TurnLeft()
}

// RotateRight turns the player 60° clockwise. Coordinate unchanged.
func (m *Mover) RotateRight() {
	m.player.Heading = m.player.Heading.TurnRight()
}

// Advance attempts one step along the current heading. The target comes from
// the (heading, row parity) delta table. An invalid target — nonexistent,
// impassable, or reserved — is a silent no-op: coordinate and heading keep
// their prior values.
func (m *Mover) Advance() MoveResult {
	from := m.player.Coord
	target := from.Add(m.player.Heading.Delta(from.RowParity()))

	res := MoveResult{From: from, To: target}
	if !m.reg.IsValid(target) {
		res.To = from
		return res
	}

	m.player.MoveTo(target)
	res.Moved = true
	return res
}
