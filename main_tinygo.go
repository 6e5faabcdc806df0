//go:build tinygo && baremetal

package main

import (
	"machine"

	"bonnet/app"
	"bonnet/device"
	"bonnet/hal"
	"bonnet/internal/config"
	"bonnet/listing"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

func main() {
	h := hal.New()
	cfg := config.Default()

	drive := device.Drive{ID: "sd0", Port: "SDCARD1"}
	var provider listing.Provider = listing.NewFATProvider(nil)
	if fat, err := mountSD(); err != nil {
		h.Logger().WriteLineString("sd: " + err.Error())
	} else {
		drive.MountPoint = "/"
		provider = listing.NewFATProvider(fat)
	}

	a, err := app.New(h, app.Options{Config: cfg, Provider: provider})
	if err != nil {
		h.Logger().WriteLineString("app: " + err.Error())
		select {}
	}
	// The slot is not hot-plug aware; the card seen at boot is the only drive.
	a.DrivesChanged([]device.Drive{drive})

	if err := hal.Run(h, a.Step, cfg.UI.Hz); err != nil {
		h.Logger().WriteLineString("stopped: " + err.Error())
	}
	select {}
}

// mountSD mounts the card on SPI0 (GP16-GP19). Cards are never formatted.
func mountSD() (*fatfs.FATFS, error) {
	sd := sdcard.New(machine.SPI0, machine.GP18, machine.GP19, machine.GP16, machine.GP17)
	if err := sd.Configure(); err != nil {
		return nil, err
	}
	fat := fatfs.New(&sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		return nil, err
	}
	return fat, nil
}
