//go:build tinygo

package app

import (
	"bonnet/device"
	"bonnet/internal/config"
)

func newMounter(config.DevicesConfig) device.Mounter { return device.NopMounter{} }
