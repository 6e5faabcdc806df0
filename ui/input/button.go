package input

import "bonnet/hal"

// Button is a discrete button press delivered to the active screen.
type Button uint8

const (
	None Button = iota
	Up
	Down
	Left
	Right
	Confirm
	Back
)

func (b Button) String() string {
	switch b {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Confirm:
		return "confirm"
	case Back:
		return "back"
	default:
		return "none"
	}
}

// Directional reports whether b moves the view.
func (b Button) Directional() bool {
	return b == Up || b == Down || b == Left || b == Right
}

// FromKey maps a hardware key to its button. Key releases map to None.
func FromKey(ev hal.KeyEvent) Button {
	if !ev.Press {
		return None
	}
	switch ev.Code {
	case hal.KeyUp:
		return Up
	case hal.KeyDown:
		return Down
	case hal.KeyLeft:
		return Left
	case hal.KeyRight:
		return Right
	case hal.KeyEnter:
		return Confirm
	case hal.KeyBack:
		return Back
	default:
		return None
	}
}
