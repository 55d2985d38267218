package internal

type handler func(vm *C8VM, ins Instruction) error

// handlers maps every decoded instruction to its implementation
var handlers = [opCount]handler{
	OpCLS:    (*C8VM).opCLS,
	OpRET:    (*C8VM).opRET,
	OpJP:     (*C8VM).opJP,
	OpCALL:   (*C8VM).opCALL,
	OpSEImm:  (*C8VM).opSEImm,
	OpSNEImm: (*C8VM).opSNEImm,
	OpSEReg:  (*C8VM).opSEReg,
	OpLDImm:  (*C8VM).opLDImm,
	OpADDImm: (*C8VM).opADDImm,
	OpLDReg:  (*C8VM).opLDReg,
	OpOR:     (*C8VM).opOR,
	OpAND:    (*C8VM).opAND,
	OpXOR:    (*C8VM).opXOR,
	OpADDReg: (*C8VM).opADDReg,
	OpSUB:    (*C8VM).opSUB,
	OpSHR:    (*C8VM).opSHR,
	OpSUBN:   (*C8VM).opSUBN,
	OpSHL:    (*C8VM).opSHL,
	OpSNEReg: (*C8VM).opSNEReg,
	OpLDI:    (*C8VM).opLDI,
	OpJPV0:   (*C8VM).opJPV0,
	OpRND:    (*C8VM).opRND,
	OpDRW:    (*C8VM).opDRW,
	OpSKP:    (*C8VM).opSKP,
	OpSKNP:   (*C8VM).opSKNP,
	OpLDVxDT: (*C8VM).opLDVxDT,
	OpLDVxK:  (*C8VM).opLDVxK,
	OpLDDTVx: (*C8VM).opLDDTVx,
	OpLDSTVx: (*C8VM).opLDSTVx,
	OpADDIVx: (*C8VM).opADDIVx,
	OpLDFVx:  (*C8VM).opLDFVx,
	OpLDBVx:  (*C8VM).opLDBVx,
	OpLDIVx:  (*C8VM).opLDIVx,
	OpLDVxI:  (*C8VM).opLDVxI,
}

func (vm *C8VM) next() {
	vm.pc += opcodeSize
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += opcodeSize
	}
	vm.pc += opcodeSize
}

func (vm *C8VM) setFlag(set bool) {
	if set {
		vm.regV[flagReg] = 1
	} else {
		vm.regV[flagReg] = 0
	}
}

// CLS
func (vm *C8VM) opCLS(Instruction) error {
	vm.pixels.clear()
	vm.changed = true
	vm.next()
	return nil
}

// RET
func (vm *C8VM) opRET(Instruction) error {
	if vm.sp == 0 {
		return ErrStackUnderflow
	}
	vm.sp--
	vm.pc = vm.stack[vm.sp]
	return nil
}

// JP nnn
func (vm *C8VM) opJP(ins Instruction) error {
	vm.pc = ins.NNN
	return nil
}

// CALL nnn
func (vm *C8VM) opCALL(ins Instruction) error {
	if vm.sp == stackSize {
		return ErrStackOverflow
	}
	vm.stack[vm.sp] = vm.pc + opcodeSize
	vm.sp++
	vm.pc = ins.NNN
	return nil
}

// SE Vx, kk
func (vm *C8VM) opSEImm(ins Instruction) error {
	vm.skipIf(vm.regV[ins.X] == ins.KK)
	return nil
}

// SNE Vx, kk
func (vm *C8VM) opSNEImm(ins Instruction) error {
	vm.skipIf(vm.regV[ins.X] != ins.KK)
	return nil
}

// SE Vx, Vy
func (vm *C8VM) opSEReg(ins Instruction) error {
	vm.skipIf(vm.regV[ins.X] == vm.regV[ins.Y])
	return nil
}

// LD Vx, kk
func (vm *C8VM) opLDImm(ins Instruction) error {
	vm.regV[ins.X] = ins.KK
	vm.next()
	return nil
}

// ADD Vx, kk does not touch VF
func (vm *C8VM) opADDImm(ins Instruction) error {
	vm.regV[ins.X] += ins.KK
	vm.next()
	return nil
}

// LD Vx, Vy
func (vm *C8VM) opLDReg(ins Instruction) error {
	vm.regV[ins.X] = vm.regV[ins.Y]
	vm.next()
	return nil
}

// OR Vx, Vy
func (vm *C8VM) opOR(ins Instruction) error {
	vm.regV[ins.X] |= vm.regV[ins.Y]
	vm.next()
	return nil
}

// AND Vx, Vy
func (vm *C8VM) opAND(ins Instruction) error {
	vm.regV[ins.X] &= vm.regV[ins.Y]
	vm.next()
	return nil
}

// XOR Vx, Vy
func (vm *C8VM) opXOR(ins Instruction) error {
	vm.regV[ins.X] ^= vm.regV[ins.Y]
	vm.next()
	return nil
}

// ADD Vx, Vy
func (vm *C8VM) opADDReg(ins Instruction) error {
	temp := uint16(vm.regV[ins.X]) + uint16(vm.regV[ins.Y])
	vm.regV[ins.X] = uint8(temp)
	vm.setFlag(temp > 0xFF)
	vm.next()
	return nil
}

// SUB Vx, Vy sets VF before storing the result
func (vm *C8VM) opSUB(ins Instruction) error {
	vm.setFlag(vm.regV[ins.X] > vm.regV[ins.Y])
	vm.regV[ins.X] -= vm.regV[ins.Y]
	vm.next()
	return nil
}

// SHR Vx {, Vy}
func (vm *C8VM) opSHR(ins Instruction) error {
	vm.regV[flagReg] = vm.regV[ins.X] & 0x01
	vm.regV[ins.X] >>= 1
	vm.next()
	return nil
}

// SUBN Vx, Vy
func (vm *C8VM) opSUBN(ins Instruction) error {
	vm.setFlag(vm.regV[ins.Y] > vm.regV[ins.X])
	vm.regV[ins.X] = vm.regV[ins.Y] - vm.regV[ins.X]
	vm.next()
	return nil
}

// SHL Vx {, Vy}
func (vm *C8VM) opSHL(ins Instruction) error {
	vm.regV[flagReg] = vm.regV[ins.X] >> 7
	vm.regV[ins.X] <<= 1
	vm.next()
	return nil
}

// SNE Vx, Vy
func (vm *C8VM) opSNEReg(ins Instruction) error {
	vm.skipIf(vm.regV[ins.X] != vm.regV[ins.Y])
	return nil
}

// LD I, nnn
func (vm *C8VM) opLDI(ins Instruction) error {
	vm.regI = ins.NNN
	vm.next()
	return nil
}

// JP V0, nnn
func (vm *C8VM) opJPV0(ins Instruction) error {
	vm.pc = ins.NNN + uint16(vm.regV[0])
	return nil
}

// RND Vx, kk
func (vm *C8VM) opRND(ins Instruction) error {
	vm.regV[ins.X] = vm.rand.RandomByte() & ins.KK
	vm.next()
	return nil
}

// DRW Vx, Vy, n
func (vm *C8VM) opDRW(ins Instruction) error {
	vm.drawSprite(vm.regV[ins.X], vm.regV[ins.Y], ins.N)
	vm.next()
	return nil
}

// SKP Vx
func (vm *C8VM) opSKP(ins Instruction) error {
	vm.skipIf(vm.IsKeyDown(vm.regV[ins.X]))
	return nil
}

// SKNP Vx
func (vm *C8VM) opSKNP(ins Instruction) error {
	vm.skipIf(!vm.IsKeyDown(vm.regV[ins.X]))
	return nil
}

// LD Vx, DT
func (vm *C8VM) opLDVxDT(ins Instruction) error {
	vm.regV[ins.X] = vm.delayTimer
	vm.next()
	return nil
}

// LD Vx, K
func (vm *C8VM) opLDVxK(ins Instruction) error {
	vm.waitForKey(ins.X)
	vm.next()
	return nil
}

// LD DT, Vx
func (vm *C8VM) opLDDTVx(ins Instruction) error {
	vm.delayTimer = vm.regV[ins.X]
	vm.next()
	return nil
}

// LD ST, Vx
func (vm *C8VM) opLDSTVx(ins Instruction) error {
	vm.soundTimer = vm.regV[ins.X]
	vm.next()
	return nil
}

// ADD I, Vx
func (vm *C8VM) opADDIVx(ins Instruction) error {
	vm.regI += uint16(vm.regV[ins.X])
	vm.setFlag(vm.regI > regIOverflowAddr)
	vm.next()
	return nil
}

// LD F, Vx
func (vm *C8VM) opLDFVx(ins Instruction) error {
	vm.regI = fontStartAddr + uint16(vm.regV[ins.X])*fontGlyphBytes
	vm.next()
	return nil
}

// LD B, Vx
func (vm *C8VM) opLDBVx(ins Instruction) error {
	vx := vm.regV[ins.X]
	vm.write(vm.regI, vx/100)
	vm.write(vm.regI+1, (vx/10)%10)
	vm.write(vm.regI+2, vx%10)
	vm.next()
	return nil
}

// LD [I], Vx
func (vm *C8VM) opLDIVx(ins Instruction) error {
	for i := uint16(0); i <= uint16(ins.X); i++ {
		vm.write(vm.regI+i, vm.regV[i])
	}
	vm.next()
	return nil
}

// LD Vx, [I]
func (vm *C8VM) opLDVxI(ins Instruction) error {
	for i := uint16(0); i <= uint16(ins.X); i++ {
		vm.regV[i] = vm.read(vm.regI + i)
	}
	vm.next()
	return nil
}
