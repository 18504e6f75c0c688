// Package vm is a CHIP-8 interpreter. The VM owns all machine state and is
// driven entirely by its host calling Step(), TickTimers() and FrameBoundary().
package vm

import (
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

const (
	// Size of the addressable memory (4kb RAM)
	MemorySize = 4096
	// Address the font glyphs are written to at construction
	FontAddress = 0x050
	// Address programmes are loaded to and start executing from
	ProgramStart = 0x200

	// Display dimensions in pixels
	ScreenWidth  = 64
	ScreenHeight = 32

	// Default maximum depth of the call stack
	DefaultMaxStack = 16
)

// RandomSource supplies the random numbers used by the Cxkk instruction.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Config controls the construction of a VM.
type Config struct {
	// Source of random bytes. A nil source uses math/rand seeded from the clock
	Random RandomSource
	// Limit draws to one per frame, see FrameBoundary()
	DrawGate bool
	// Maximum number of nested subroutine calls. Zero uses DefaultMaxStack
	MaxStack int
	// Receives load and unknown instruction messages. A nil logger discards them
	Logger *log.Logger
}

// DefaultConfig returns the configuration used by the interpreter binary.
func DefaultConfig() Config {
	return Config{
		Random:   rand.New(rand.NewSource(time.Now().UnixNano())),
		DrawGate: true,
		MaxStack: DefaultMaxStack,
	}
}

type VM struct {
	// The current opcode being emulated
	opcode uint16
	// Direct access memory (4kb RAM)
	memory [MemorySize]byte
	// Programme counter
	pc uint16
	// Index register, only the low 12 bits are meaningful
	index uint16
	// Stack for 16-bit addresses, used to call subroutines/functions and return
	stack []uint16
	// Maximum length of the stack before a call fails
	maxStack int
	// Delay timer, decremented at 60Hz -> 0
	delayTimer uint8
	// Sound timer, decremented at 60Hz -> 0, the host may beep while not 0
	soundTimer uint8
	// Variable registers, 16 general purpose 8-bit registers numbered [0-F].
	// VF doubles as the flag register
	variables [16]uint8
	// The key currently held down, only valid when keyDown is set
	key     uint8
	keyDown bool
	// Draw gate, limits Dxyn to one draw per frame
	gate     GateState
	gateUsed bool
	// Random numbers for Cxkk
	random RandomSource
	// Current state of the display
	pixels [ScreenWidth * ScreenHeight]bool

	logger *log.Logger
	// Last unknown instruction reported, a programme stuck on one is only
	// logged once
	unknown struct {
		opcode, pc uint16
		seen       bool
	}
}

// New creates a VM with the font loaded and the programme counter at the
// programme start address.
func New(cfg Config) *VM {
	vm := &VM{
		pc:       ProgramStart,
		random:   cfg.Random,
		gateUsed: cfg.DrawGate,
		maxStack: cfg.MaxStack,
		logger:   cfg.Logger,
	}
	if vm.logger == nil {
		vm.logger = log.NewNop()
	}
	if vm.random == nil {
		vm.random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if vm.maxStack <= 0 {
		vm.maxStack = DefaultMaxStack
	}
	vm.stack = make([]uint16, 0, vm.maxStack)
	copy(vm.memory[FontAddress:], FontSet[:])
	return vm
}

// LoadROM reads the entire programme from r and loads it into memory. Nothing
// is written unless the whole programme was read and fits.
func (vm *VM) LoadROM(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(ErrROMRead, err.Error())
	}
	return vm.LoadBytes(data)
}

// LoadBytes copies the programme into memory from ProgramStart and resets the
// programme counter. Loading again overwrites the previous programme.
func (vm *VM) LoadBytes(data []byte) error {
	if len(data)+ProgramStart > MemorySize {
		return errors.Wrapf(ErrROMTooLarge, "%d bytes (max %d)", len(data), MemorySize-ProgramStart)
	}
	copy(vm.memory[ProgramStart:], data)
	vm.pc = ProgramStart
	vm.logger.Debug("Programme loaded", log.Int("size", len(data)), log.Uint16("address", ProgramStart))
	return nil
}

// Step fetches and executes a single instruction. The only errors returned
// are stack faults, after which the programme cannot meaningfully continue.
func (vm *VM) Step() error {
	// Fetch next opcode by combining the two successive bytes indicated by the PC
	vm.opcode = vm.PeekWord(vm.pc)
	vm.pc += 2
	return vm.execute(vm.opcode)
}

// TickTimers decrements the delay and sound timers. It should be called at
// 60Hz regardless of how many instructions are executed in that time.
func (vm *VM) TickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// SetKey records a key transition. Only one key is tracked at a time: a press
// replaces whatever key was held and a release clears the held key whichever
// key was released.
func (vm *VM) SetKey(key uint8, pressed bool) {
	if pressed {
		vm.key = key & 0x0F
		vm.keyDown = true
	} else {
		vm.key = 0
		vm.keyDown = false
	}
}

// Key returns the key currently held down, if any.
func (vm *VM) Key() (uint8, bool) {
	return vm.key, vm.keyDown
}

// Screen returns the display buffer, indexed by y*ScreenWidth+x. The caller
// must not modify it.
func (vm *VM) Screen() *[ScreenWidth * ScreenHeight]bool {
	return &vm.pixels
}

// Beeping is true while the sound timer is running.
func (vm *VM) Beeping() bool {
	return vm.soundTimer > 0
}

// PC returns the programme counter. It and the accessors that follow expose
// machine state for hosts and debugging, without side effects.
func (vm *VM) PC() uint16           { return vm.pc }
func (vm *VM) Index() uint16        { return vm.index }
func (vm *VM) Opcode() uint16       { return vm.opcode }
func (vm *VM) DelayTimer() uint8    { return vm.delayTimer }
func (vm *VM) SoundTimer() uint8    { return vm.soundTimer }
func (vm *VM) StackDepth() int      { return len(vm.stack) }
func (vm *VM) Register(n int) uint8 { return vm.variables[n&0x0F] }
