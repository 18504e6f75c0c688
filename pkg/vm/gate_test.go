package vm_test

import (
	"testing"

	"github.com/JoshCooperr/chip8-interpreter/pkg/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newGatedVM(t *testing.T, program ...uint16) *vm.VM {
	t.Helper()
	mc := vm.New(vm.Config{
		Random:   fixedRandom(0),
		DrawGate: true,
		Logger:   log.NewTestLogger(t),
	})
	assert.NoError(t, mc.LoadBytes(assemble(program...)))
	return mc
}

func TestDrawGate(t *testing.T) {
	// I = glyph for 0; draw at (0, 0); loop
	mc := newGatedVM(t, 0xA050, 0xD005, 0x1204)
	step(t, mc, 1)

	// first attempt arms the gate and rewinds
	step(t, mc, 1)
	assert.Equal(t, vm.GateArmed, mc.Gate())
	assert.Equal(t, 0x202, mc.PC())

	// further attempts keep waiting until the frame boundary
	for i := 0; i < 20; i++ {
		step(t, mc, 1)
		assert.Equal(t, 0x202, mc.PC(), "PC while armed")
	}
	assert.Equal(t, 0, litPixels(mc), "sprite drawn before frame boundary")

	mc.FrameBoundary()
	assert.Equal(t, vm.GateReleased, mc.Gate())

	step(t, mc, 1)
	assert.Equal(t, vm.GateIdle, mc.Gate())
	assert.Equal(t, 0x204, mc.PC())
	assert.True(t, litPixels(mc) > 0, "sprite not drawn after frame boundary")
}

func TestDrawGateOnePerFrame(t *testing.T) {
	// I = glyph for 0; draw at (0, 0) twice
	mc := newGatedVM(t, 0xA050, 0xD005, 0xD005, 0x1206)

	frames := 0
	for mc.PC() != 0x206 {
		step(t, mc, 10)
		mc.FrameBoundary()
		frames++
		if frames > 10 {
			t.Fatalf("draws never completed")
		}
	}

	// each draw waits for its own frame boundary
	assert.Equal(t, 3, frames)
	assert.Equal(t, 1, mc.Register(0xF))
}

func TestDrawGateReleasedEarly(t *testing.T) {
	// a frame boundary before the draw lets the next draw through immediately
	mc := newGatedVM(t, 0xA050, 0xD005)
	mc.FrameBoundary()
	step(t, mc, 2)

	assert.Equal(t, 0x204, mc.PC())
	assert.Equal(t, vm.GateIdle, mc.Gate())
}

func TestWaitKeyIgnoresGate(t *testing.T) {
	mc := newGatedVM(t, 0xF00A)
	step(t, mc, 3)
	assert.Equal(t, vm.GateIdle, mc.Gate(), "gate changed by key wait")
}
