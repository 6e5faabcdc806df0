//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var hostKeymap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeySpace, KeyEnter},
	{ebiten.KeyEscape, KeyBack},
	{ebiten.KeyBackspace, KeyBack},
	// Vi-style, for keyboards without arrows.
	{ebiten.KeyK, KeyUp},
	{ebiten.KeyJ, KeyDown},
	{ebiten.KeyH, KeyLeft},
	{ebiten.KeyL, KeyRight},
}

func (k *hostKeyboard) poll() {
	for _, m := range hostKeymap {
		if inpututil.IsKeyJustPressed(m.key) {
			k.push(m.code)
		}
	}
}
