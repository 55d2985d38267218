package internal

// Display dimensions
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is the monochrome frame buffer, indexed as [row][column]
type Display [ScreenHeight][ScreenWidth]uint8

// Pixel reports whether the pixel at column x, row y is lit.
// Coordinates wrap around the screen edges.
func (d *Display) Pixel(x, y int) bool {
	return d[wrap(y, ScreenHeight)][wrap(x, ScreenWidth)] == 1
}

func wrap(v, size int) int {
	return ((v % size) + size) % size
}

func (d *Display) clear() {
	*d = Display{}
}

// Display returns a copy of the current frame buffer
func (vm *C8VM) Display() Display {
	return vm.pixels
}

// Pixel reports whether the pixel at column x, row y is lit
func (vm *C8VM) Pixel(x, y int) bool {
	return vm.pixels.Pixel(x, y)
}

// Changed returns whether the last cycle modified the display
func (vm *C8VM) Changed() bool {
	return vm.changed
}

// drawSprite XORs an n byte sprite read from I onto the display at (x, y).
// Each axis wraps on its own. VF is set when a lit pixel gets switched off.
func (vm *C8VM) drawSprite(x uint8, y uint8, n uint8) {
	vm.regV[flagReg] = 0
	for byteIdx := uint8(0); byteIdx < n; byteIdx++ {
		spriteByte := vm.read(vm.regI + uint16(byteIdx))
		row := (int(y) + int(byteIdx)) % ScreenHeight
		for bitIdx := uint8(0); bitIdx < 8; bitIdx++ {
			bit := (spriteByte >> (7 - bitIdx)) & 0x1
			px := &vm.pixels[row][(int(x)+int(bitIdx))%ScreenWidth]
			vm.regV[flagReg] |= bit & *px
			*px ^= bit
		}
	}
	vm.changed = true
}
