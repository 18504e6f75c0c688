package vm

// clearScreen turns every pixel off.
func (vm *VM) clearScreen() {
	vm.pixels = [ScreenWidth * ScreenHeight]bool{}
}

// drawSprite XORs an 8 pixel wide sprite of n rows, read from memory at the
// index register, onto the display at (vx, vy). The starting coordinates wrap
// but the sprite itself is clipped at the right and bottom edges. VF is set if
// any pixel is turned from on to off.
func (vm *VM) drawSprite(x, y, n uint16) {
	// Get the x, y coords from the vx, vy registers as the starting coordinates to draw the
	// sprite from (these coordinates wrap, hence the modulo)
	xcoord := int(vm.variables[x]) % ScreenWidth
	ycoord := int(vm.variables[y]) % ScreenHeight

	vm.variables[0xF] = 0
	flipped := false

	for row := 0; row < int(n); row++ {
		if ycoord+row >= ScreenHeight {
			// Stop drawing as the bottom of the screen has been reached
			break
		}

		spriteRow := vm.Peek(vm.index + uint16(row))

		for b := 0; b < 8; b++ {
			if xcoord+b >= ScreenWidth {
				// Stop drawing this row as the right edge of the screen has been reached
				break
			}
			if spriteRow&(0x80>>b) == 0 {
				continue
			}

			pixelsIndex := (ycoord+row)*ScreenWidth + xcoord + b
			if vm.pixels[pixelsIndex] {
				// The pixel is about to be turned ON -> OFF
				flipped = true
			}
			vm.pixels[pixelsIndex] = !vm.pixels[pixelsIndex]
		}
	}

	if flipped {
		vm.variables[0xF] = 1
	}
}
