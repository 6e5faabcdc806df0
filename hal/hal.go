package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// The Adafruit 128x64 OLED bonnet panel.
const (
	PanelWidth  = 128
	PanelHeight = 64
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// Buffer is owned by the UI thread; Present publishes its contents to
// whatever shows them.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode identifies one of the device buttons.
//
// The panel has a four-way joystick plus two push buttons; hosts map
// their keyboards onto the same set.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBack
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyBack:
		return "back"
	default:
		return "unknown"
	}
}

// ParseKey maps a key name (as printed by String) to its code.
func ParseKey(s string) KeyCode {
	for k := KeyUp; k <= KeyBack; k++ {
		if k.String() == s {
			return k
		}
	}
	return KeyUnknown
}

// KeyEvent is a button event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides button events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL provides the only contact point between the viewer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
