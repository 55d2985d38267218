package internal

import "github.com/retroenv/retrogolib/log"

// KeyCount is the number of keys on the hexadecimal keypad
const KeyCount = 16

// KeyDown marks the keypad key as pressed
func (vm *C8VM) KeyDown(code uint8) {
	vm.key |= 1 << (code & 0xF)
}

// KeyUp marks the keypad key as released
func (vm *C8VM) KeyUp(code uint8) {
	vm.key &^= 1 << (code & 0xF)
}

// IsKeyDown returns whether the keypad key is pressed
func (vm *C8VM) IsKeyDown(code uint8) bool {
	mask := uint16(1) << (code & 0xF)
	return vm.key&mask == mask
}

// waitForKey blocks execution until the next key press is latched into Vx
func (vm *C8VM) waitForKey(x uint8) {
	vm.waiting = true
	vm.waitReg = x
	if vm.logger != nil {
		vm.logger.Debug("Waiting for key press", log.Uint8("register", x))
	}
}

// pollKeypad latches the lowest pressed key into the waiting register
func (vm *C8VM) pollKeypad() {
	for code := uint8(0); code < KeyCount; code++ {
		if !vm.IsKeyDown(code) {
			continue
		}
		vm.regV[vm.waitReg] = code
		vm.waiting = false
		if vm.logger != nil {
			vm.logger.Debug("Key press latched",
				log.Uint8("register", vm.waitReg),
				log.Uint8("key", code))
		}
		return
	}
}
