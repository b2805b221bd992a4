package agent

// Heading is one of the four compass directions the agent can face.
// It is implemented as a closed tagged variant (an int enum with an
// exhaustive switch in every operation below) rather than polymorphic
// dispatch, per the engine's design note favoring compile-time
// completeness for small closed enumerations.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// String renders the heading as a single compass letter.
func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		panic("agent: invalid heading")
	}
}

// TurnLeft returns the heading reached by a 90-degree counterclockwise
// turn: N->W, W->S, S->E, E->N.
func (h Heading) TurnLeft() Heading {
	switch h {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		panic("agent: invalid heading")
	}
}

// TurnRight returns the heading reached by a 90-degree clockwise turn:
// N->E, E->S, S->W, W->N.
func (h Heading) TurnRight() Heading {
	switch h {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	default:
		panic("agent: invalid heading")
	}
}

// Delta returns the (drow, dcol) offset one forward step in this
// heading applies to a position.
func (h Heading) Delta() (drow, dcol int) {
	switch h {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	default:
		panic("agent: invalid heading")
	}
}

// AllHeadings enumerates the closed set in clockwise order starting
// from North.
var AllHeadings = [4]Heading{North, East, South, West}
