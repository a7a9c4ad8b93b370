package grid

// Heading is the player's facing direction in degrees, always a multiple
// of 60 in [0, 360).
type Heading int

const (
	HeadingE  Heading = 0
	HeadingNE Heading = 60
	HeadingNW Heading = 120
	HeadingW  Heading = 180
	HeadingSW Heading = 240
	HeadingSE Heading = 300
)

// Headings lists all six facings in heading order.
var Headings = [6]Heading{HeadingE, HeadingNE, HeadingNW, HeadingW, HeadingSW, HeadingSE}

// TurnLeft rotates 60° counterclockwise.
func (h Heading) TurnLeft() Heading {
	return (h + 60) % 360
}

// TurnRight rotates 60° clockwise.
func (h Heading) TurnRight() Heading {
	return (h + 300) % 360
}

// Delta returns the coordinate offset for advancing one tile along h from a
// row of the given parity. E and W map to the same delta for both parities.
func (h Heading) Delta(parity int) Coord {
	return neighborOffsets[parity&1][int(h)/60]
}

// String returns a compass name for logs and the event feed.
func (h Heading) String() string {
	switch h {
	case HeadingE:
		return "E"
	case HeadingNE:
		return "NE"
	case HeadingNW:
		return "NW"
	case HeadingW:
		return "W"
	case HeadingSW:
		return "SW"
	case HeadingSE:
		return "SE"
	default:
		return "?"
	}
}
