//go:build !tinygo

package app

import (
	"bonnet/device"
	"bonnet/internal/config"
)

func newMounter(cfg config.DevicesConfig) device.Mounter {
	if cfg.Mount && cfg.Mode == config.DeviceModeSys {
		return &device.UdisksMounter{}
	}
	return device.NopMounter{}
}
