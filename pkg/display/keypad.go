package display

import "github.com/faiface/pixel/pixelgl"

// KeyEvent is a change in state of one of the sixteen CHIP-8 keys
type KeyEvent struct {
	Key     uint8
	Pressed bool
}

// Keypad maps the left hand side of a QWERTY keyboard onto the CHIP-8 keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Keypad = map[pixelgl.Button]uint8{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// PollKeys returns the keypad transitions since the last frame. Releases are
// listed before presses so that a key pressed in the same frame another was
// released remains held.
func (d *Display) PollKeys() []KeyEvent {
	var released, pressed []KeyEvent
	for b, k := range Keypad {
		if d.JustReleased(b) {
			released = append(released, KeyEvent{Key: k})
		}
		if d.JustPressed(b) {
			pressed = append(pressed, KeyEvent{Key: k, Pressed: true})
		}
	}
	return append(released, pressed...)
}

// ScreenshotRequested is true in the frame F12 was pressed.
func (d *Display) ScreenshotRequested() bool {
	return d.JustPressed(pixelgl.KeyF12)
}

// QuitRequested is true in the frame Escape was pressed.
func (d *Display) QuitRequested() bool {
	return d.JustPressed(pixelgl.KeyEscape)
}
