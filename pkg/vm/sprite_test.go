package vm_test

import (
	"fmt"
	"testing"

	"github.com/JoshCooperr/chip8-interpreter/pkg/vm"
	"github.com/retroenv/retrogolib/assert"
)

func pixel(mc *vm.VM, x, y int) bool {
	return mc.Screen()[y*vm.ScreenWidth+x]
}

func litPixels(mc *vm.VM) int {
	n := 0
	for _, p := range mc.Screen() {
		if p {
			n++
		}
	}
	return n
}

func TestDrawSprite(t *testing.T) {
	// V0 = 10; V1 = 5; I = glyph for 0; draw 5 rows
	mc := newVM(t, 0x600A, 0x6105, 0xA050, 0xD015)
	step(t, mc, 4)

	for row, bits := range vm.FontSet[:5] {
		for b := 0; b < 8; b++ {
			want := bits&(0x80>>b) != 0
			assert.Equal(t, want, pixel(mc, 10+b, 5+row), fmt.Sprintf("pixel (%d, %d)", 10+b, 5+row))
		}
	}
	assert.Equal(t, 0, mc.Register(0xF))
}

func TestDrawCollision(t *testing.T) {
	// I = glyph for 8; draw twice at the same position
	mc := newVM(t, 0x6010, 0x6108, 0xA078, 0xD015, 0xD015)

	step(t, mc, 4)
	assert.Equal(t, 0, mc.Register(0xF), "VF after first draw")
	assert.True(t, litPixels(mc) > 0, "first draw lit no pixels")

	step(t, mc, 1)
	assert.Equal(t, 1, mc.Register(0xF), "VF after second draw")
	assert.Equal(t, 0, litPixels(mc))
}

func TestDrawResetsVF(t *testing.T) {
	// VF = 1; draw onto an empty screen
	mc := newVM(t, 0x6F01, 0xA050, 0xD001)
	step(t, mc, 3)
	assert.Equal(t, 0, mc.Register(0xF))
}

func TestDrawClipping(t *testing.T) {
	// V0 = 60; V1 = 30; I = 0x300; draw 5 rows of solid 0xFF
	program := []uint16{0x603C, 0x611E, 0xA300, 0xD015}
	mc := newVM(t, program...)
	for i := uint16(0); i < 5; i++ {
		mc.Poke(0x300+i, 0xFF)
	}
	step(t, mc, len(program))

	// only the 4x2 rectangle in the bottom right corner is drawn
	assert.Equal(t, 8, litPixels(mc))
	for y := 30; y < 32; y++ {
		for x := 60; x < 64; x++ {
			assert.True(t, pixel(mc, x, y), fmt.Sprintf("pixel (%d, %d) not lit", x, y))
		}
	}

	// nothing wrapped to the left or top edges
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.False(t, pixel(mc, x, y), fmt.Sprintf("pixel (%d, %d) lit by wrapping", x, y))
		}
	}
}

func TestDrawOriginWraps(t *testing.T) {
	// V0 = 66; V1 = 33; I = 0x300; draw 1 row of 0x80
	program := []uint16{0x6042, 0x6121, 0xA300, 0xD011}
	mc := newVM(t, program...)
	mc.Poke(0x300, 0x80)
	step(t, mc, len(program))

	assert.True(t, pixel(mc, 2, 1))
	assert.Equal(t, 1, litPixels(mc))
}

func TestDrawIndexWraps(t *testing.T) {
	// I = 0xFFF; draw 2 rows, the second row is read from address 0
	program := []uint16{0x6000, 0x6100, 0xAFFF, 0xD012}
	mc := newVM(t, program...)
	mc.Poke(0xFFF, 0x80)
	mc.Poke(0x000, 0x40)
	step(t, mc, len(program))

	assert.True(t, pixel(mc, 0, 0))
	assert.True(t, pixel(mc, 1, 1), "second sprite row not read from address 0")
}

func TestClearScreen(t *testing.T) {
	mc := newVM(t, 0x6000, 0x6100, 0xA050, 0xD01F, 0x00E0)
	step(t, mc, 4)
	assert.True(t, litPixels(mc) > 0, "draw lit no pixels")

	step(t, mc, 1)
	assert.Equal(t, 0, litPixels(mc))
}
