package vm

// FontSet holds the sprites for the hexadecimal digits 0-F, five rows each.
// It is written to FontAddress when a VM is created.
var FontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// addresses wrap at the end of the 4kb address space
const addressMask = MemorySize - 1

// Peek returns the byte at addr.
func (vm *VM) Peek(addr uint16) uint8 {
	return vm.memory[addr&addressMask]
}

// PeekWord returns the big-endian word starting at addr.
func (vm *VM) PeekWord(addr uint16) uint16 {
	return uint16(vm.Peek(addr))<<8 | uint16(vm.Peek(addr+1))
}

// Poke writes a byte to addr.
func (vm *VM) Poke(addr uint16, value uint8) {
	vm.memory[addr&addressMask] = value
}

// PokeWord writes the low byte of value to addr and the high byte to addr+1.
// Note that this is the reverse of the order PeekWord reads in.
func (vm *VM) PokeWord(addr uint16, value uint16) {
	vm.Poke(addr, uint8(value&0x00FF))
	vm.Poke(addr+1, uint8(value>>8))
}
