package vm

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// execute applies a single instruction. The programme counter has already
// been advanced past it.
func (vm *VM) execute(opcode uint16) error {
	// Extract the various nibbles (half bytes) from the opcode
	instr := opcode & 0xF000     // 1st nibble, the type of instruction
	x := (opcode & 0x0F00) >> 8  // 2nd nibble, used to look up a register (vx) in variables
	y := (opcode & 0x00F0) >> 4  // 3rd nibble, used to look up a register (vy) in variables
	n := opcode & 0x000F         // 4th nibble, a 4-bit number
	nn := uint8(opcode & 0x00FF) // 2nd byte, an 8-bit number
	nnn := opcode & 0x0FFF       // 2nd, 3rd & 4th nibbles, a 12-bit memory address

	switch instr {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			// Clear the screen
			vm.clearScreen()
			return nil
		case 0x00EE:
			// Return from a subroutine, pop address from stack and assign to PC
			if len(vm.stack) == 0 {
				return errors.Wrapf(ErrStackUnderflow, "return at %#03x", vm.pc-2)
			}
			vm.pc = vm.stack[len(vm.stack)-1]
			vm.stack = vm.stack[:len(vm.stack)-1]
			return nil
		}

	case 0x1000:
		// Jump by setting PC to nnn
		vm.pc = nnn
		return nil

	case 0x2000:
		// Call the subroutine at nnn in memory, set PC to this after saving current value to
		// the stack so the subroutine can return later
		if len(vm.stack) >= vm.maxStack {
			return errors.Wrapf(ErrStackOverflow, "call at %#03x (depth %d)", vm.pc-2, len(vm.stack))
		}
		vm.stack = append(vm.stack, vm.pc)
		vm.pc = nnn
		return nil

	case 0x3000:
		// Skip the next instruction if the value in register vx == nn
		if vm.variables[x] == nn {
			vm.pc += 2
		}
		return nil

	case 0x4000:
		// Skip the next instruction if the value in register vx != nn
		if vm.variables[x] != nn {
			vm.pc += 2
		}
		return nil

	case 0x5000:
		// Skip the next instruction if the values in registers vx == vy
		if n == 0x0 {
			if vm.variables[x] == vm.variables[y] {
				vm.pc += 2
			}
			return nil
		}

	case 0x6000:
		// Set register vx to the value in nn
		vm.variables[x] = nn
		return nil

	case 0x7000:
		// Add to register vx the value in nn, wrapping. VF is not affected
		vm.variables[x] = uint8((uint16(vm.variables[x]) + uint16(nn)) & 0xFF)
		return nil

	case 0x8000:
		if vm.arithmetic(x, y, n) {
			return nil
		}

	case 0x9000:
		// Skip the next instruction if the values in registers vx != vy
		if n == 0x0 {
			if vm.variables[x] != vm.variables[y] {
				vm.pc += 2
			}
			return nil
		}

	case 0xA000:
		// Set the index register to the value in nnn
		vm.index = nnn
		return nil

	case 0xB000:
		// Jump to nnn offset by the value in register v0
		vm.pc = (nnn + uint16(vm.variables[0])) & 0x0FFF
		return nil

	case 0xC000:
		// Generate a random number, r, and set register vx = r AND nn
		r := uint8(vm.random.Intn(256))
		vm.variables[x] = r & nn
		return nil

	case 0xD000:
		// Draw a sprite, unless the draw gate is holding draws until the next frame
		if !vm.holdDraw() {
			vm.drawSprite(x, y, n)
		}
		return nil

	case 0xE000:
		switch nn {
		case 0x9E:
			// Skip the next instruction if the key in vx is held down
			if vm.keyDown && vm.key == vm.variables[x] {
				vm.pc += 2
			}
			return nil
		case 0xA1:
			// Skip the next instruction if the key in vx is not held down
			if !vm.keyDown || vm.key != vm.variables[x] {
				vm.pc += 2
			}
			return nil
		}

	case 0xF000:
		if vm.misc(x, nn) {
			return nil
		}
	}

	// Unknown instructions are skipped so a bad ROM can carry on running
	vm.unknownInstruction(opcode, vm.pc-2)
	return nil
}

func (vm *VM) unknownInstruction(opcode, pc uint16) {
	if vm.unknown.seen && vm.unknown.opcode == opcode && vm.unknown.pc == pc {
		return
	}
	vm.unknown.opcode, vm.unknown.pc, vm.unknown.seen = opcode, pc, true
	vm.logger.Warn("Unknown instruction",
		log.String("opcode", fmt.Sprintf("%04X", opcode)),
		log.Uint16("pc", pc))
}

// arithmetic executes the 8xyn instructions. VF is always written after vx so
// that the flag wins if x is F. Returns false for unknown instructions.
func (vm *VM) arithmetic(x, y, n uint16) bool {
	switch n {
	case 0x0:
		// Set register vx = vy
		vm.variables[x] = vm.variables[y]
	case 0x1:
		// Set register vx = vx OR vy
		vm.variables[x] |= vm.variables[y]
		vm.variables[0xF] = 0
	case 0x2:
		// Set register vx = vx AND vy
		vm.variables[x] &= vm.variables[y]
		vm.variables[0xF] = 0
	case 0x3:
		// Set register vx = vx XOR vy
		vm.variables[x] ^= vm.variables[y]
		vm.variables[0xF] = 0
	case 0x4:
		// Set register vx = vx + vy, vf = 1 if the result overflowed
		sum := uint16(vm.variables[x]) + uint16(vm.variables[y])
		vm.variables[x] = uint8(sum & 0xFF)
		vm.variables[0xF] = uint8(sum >> 8)
	case 0x5:
		// Set register vx = vx - vy, vf = 1 if there was no borrow
		vx, vy := vm.variables[x], vm.variables[y]
		vm.variables[x] = uint8((uint16(vx) - uint16(vy)) & 0xFF)
		vm.variables[0xF] = flag(vx >= vy)
	case 0x6:
		// Set register vx = vy >> 1, vf = the bit shifted out
		vy := vm.variables[y]
		vm.variables[x] = vy >> 1
		vm.variables[0xF] = vy & 0x01
	case 0x7:
		// Set register vx = vy - vx, vf = 1 if there was no borrow
		vx, vy := vm.variables[x], vm.variables[y]
		vm.variables[x] = uint8((uint16(vy) - uint16(vx)) & 0xFF)
		vm.variables[0xF] = flag(vy >= vx)
	case 0xE:
		// Set register vx = vy << 1, vf = the bit shifted out
		vy := vm.variables[y]
		vm.variables[x] = uint8((uint16(vy) << 1) & 0xFF)
		vm.variables[0xF] = (vy & 0x80) >> 7
	default:
		return false
	}
	return true
}

// misc executes the Fxnn instructions. Returns false for unknown instructions.
func (vm *VM) misc(x uint16, nn uint8) bool {
	switch nn {
	case 0x07:
		// Set register vx to the delay timer
		vm.variables[x] = vm.delayTimer
	case 0x0A:
		// Wait for a key press and store it in vx
		vm.waitKey(x)
	case 0x15:
		// Set the delay timer to vx
		vm.delayTimer = vm.variables[x]
	case 0x18:
		// Set the sound timer to vx
		vm.soundTimer = vm.variables[x]
	case 0x1E:
		// Add vx to the index register, vf = 1 if the sum went past the end of memory
		sum := vm.index + uint16(vm.variables[x])
		vm.variables[0xF] = flag(sum > 0x1000)
		vm.index = sum & 0x0FFF
	case 0x29:
		// Point the index register at the font glyph for the low nibble of vx
		vm.index = FontAddress + uint16(vm.variables[x]&0x0F)*5
	case 0x33:
		// Store the decimal digits of vx at index, index+1 and index+2
		v := vm.variables[x]
		vm.Poke(vm.index, v/100)
		vm.Poke(vm.index+1, (v/10)%10)
		vm.Poke(vm.index+2, v%10)
	case 0x55:
		// Store registers v0 to vx in memory starting at index
		for i := uint16(0); i <= x; i++ {
			vm.Poke(vm.index+i, vm.variables[i])
		}
		vm.index = (vm.index + x + 1) & 0x0FFF
	case 0x65:
		// Load registers v0 to vx from memory starting at index
		for i := uint16(0); i <= x; i++ {
			vm.variables[i] = vm.Peek(vm.index + i)
		}
		vm.index = (vm.index + x + 1) & 0x0FFF
	default:
		return false
	}
	return true
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
