// Package nav keeps the stack of screens and runs the UI thread.
package nav

import (
	"bonnet/device"
	"bonnet/ui/input"
	"bonnet/ui/render"
)

// Screen is anything the host can show. Every other capability is optional
// and discovered with a type assertion.
type Screen interface {
	Render(c *render.Canvas)
}

// ButtonHandler screens receive button presses while on top.
type ButtonHandler interface {
	HandleButton(b input.Button)
}

// DeviceChangeAware screens receive the drive list while on top, and
// again each time they become the top screen.
type DeviceChangeAware interface {
	DrivesChanged(drives []device.Drive)
}

// Destroyer screens release their resources when popped.
type Destroyer interface {
	Destroy()
}

// Navigator is the part of the host that screens may call. Push and
// PopToParent belong to the UI thread; RequestRepaint is safe anywhere.
type Navigator interface {
	Push(s Screen)
	PopToParent()
	RequestRepaint()
}
