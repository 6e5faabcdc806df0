//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
)

// Bonnet wiring on a Pico: OLED on I2C0, joystick and A/B buttons active low.
var bonnetButtons = []struct {
	pin  machine.Pin
	code KeyCode
}{
	{machine.GP2, KeyUp},
	{machine.GP3, KeyDown},
	{machine.GP4, KeyLeft},
	{machine.GP5, KeyRight},
	{machine.GP6, KeyEnter}, // A
	{machine.GP7, KeyBack},  // B
}

type bonnetHAL struct {
	logger *uartLogger
	fb     *MemFramebuffer
	kbd    *pinKeyboard
}

// New returns the OLED bonnet HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	fb := NewMemFramebuffer(PanelWidth, PanelHeight)
	if err := attachOLED(fb); err != nil {
		logger.WriteLineString("hal: oled: " + err.Error())
	}

	return &bonnetHAL{
		logger: logger,
		fb:     fb,
		kbd:    newPinKeyboard(),
	}
}

func (h *bonnetHAL) Logger() Logger   { return h.logger }
func (h *bonnetHAL) Display() Display { return bonnetDisplay{fb: h.fb} }
func (h *bonnetHAL) Input() Input     { return bonnetInput{kbd: h.kbd} }

type bonnetDisplay struct {
	fb Framebuffer
}

func (d bonnetDisplay) Framebuffer() Framebuffer { return d.fb }

type bonnetInput struct {
	kbd Keyboard
}

func (in bonnetInput) Keyboard() Keyboard { return in.kbd }

// Run drives step at hz until it returns an error.
func Run(h HAL, step func() error, hz int) error {
	if hz <= 0 {
		hz = 30
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()
	for range t.C {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func attachOLED(fb *MemFramebuffer) error {
	if err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP8,
		SCL:       machine.GP9,
		Frequency: 400 * machine.KHz,
	}); err != nil {
		return err
	}
	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{
		Address:  0x3C,
		Width:    PanelWidth,
		Height:   PanelHeight,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()

	frame := make([]byte, len(fb.Buffer()))
	on := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	off := color.RGBA{A: 0xff}
	fb.OnPresent(func() {
		fb.Snapshot(frame)
		for y := 0; y < PanelHeight; y++ {
			for x := 0; x < PanelWidth; x++ {
				i := (y*PanelWidth + x) * 2
				c := off
				if Lit(uint16(frame[i]) | uint16(frame[i+1])<<8) {
					c = on
				}
				dev.SetPixel(int16(x), int16(y), c)
			}
		}
		_ = dev.Display()
	})
	return nil
}

type pinKeyboard struct {
	ch chan KeyEvent
}

func newPinKeyboard() *pinKeyboard {
	k := &pinKeyboard{ch: make(chan KeyEvent, 16)}
	for _, b := range bonnetButtons {
		b.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	go k.scan()
	return k
}

func (k *pinKeyboard) Events() <-chan KeyEvent { return k.ch }

// scan polls the buttons; a press must be stable for two samples.
func (k *pinKeyboard) scan() {
	prev := make([]bool, len(bonnetButtons))
	held := make([]bool, len(bonnetButtons))
	for {
		for i, b := range bonnetButtons {
			down := !b.pin.Get()
			if down && prev[i] && !held[i] {
				held[i] = true
				select {
				case k.ch <- KeyEvent{Code: b.code, Press: true}:
				default:
				}
			}
			if !down {
				held[i] = false
			}
			prev[i] = down
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
