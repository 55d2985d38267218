package internal

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the CHIP-8 instructions
type Op uint8

// CHIP-8 instructions, named after their Cowgod mnemonic and operands
const (
	OpCLS      Op = iota // 00E0
	OpRET                // 00EE
	OpJP                 // 1nnn
	OpCALL               // 2nnn
	OpSEImm              // 3xkk
	OpSNEImm             // 4xkk
	OpSEReg              // 5xy0
	OpLDImm              // 6xkk
	OpADDImm             // 7xkk
	OpLDReg              // 8xy0
	OpOR                 // 8xy1
	OpAND                // 8xy2
	OpXOR                // 8xy3
	OpADDReg             // 8xy4
	OpSUB                // 8xy5
	OpSHR                // 8xy6
	OpSUBN               // 8xy7
	OpSHL                // 8xyE
	OpSNEReg             // 9xy0
	OpLDI                // Annn
	OpJPV0               // Bnnn
	OpRND                // Cxkk
	OpDRW                // Dxyn
	OpSKP                // Ex9E
	OpSKNP               // ExA1
	OpLDVxDT             // Fx07
	OpLDVxK              // Fx0A
	OpLDDTVx             // Fx15
	OpLDSTVx             // Fx18
	OpADDIVx             // Fx1E
	OpLDFVx              // Fx29
	OpLDBVx              // Fx33
	OpLDIVx              // Fx55
	OpLDVxI              // Fx65

	opCount
)

// Instruction is a decoded opcode together with its operand fields
type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8  // the lower 4 bits of the high byte of the instruction
	Y      uint8  // the upper 4 bits of the low byte of the instruction
	N      uint8  // the lowest 4 bits of the instruction
	KK     uint8  // the lowest 8 bits of the instruction
	NNN    uint16 // the lowest 12 bits of the instruction
}

// Decode splits a 16-bit opcode into its fields and identifies the instruction.
// Unknown bit patterns return ErrIllegalOpcode.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8((opcode >> 8) & 0x000F),
		Y:      uint8((opcode >> 4) & 0x000F),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}

	op, ok := decodeOp(opcode, ins.N, ins.KK)
	if !ok {
		ins.Op = opCount
		return ins, errors.Wrapf(ErrIllegalOpcode, "%04X", opcode)
	}
	ins.Op = op
	return ins, nil
}

func decodeOp(opcode uint16, n, kk uint8) (Op, bool) {
	switch opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return OpCLS, true
		case 0x00EE:
			return OpRET, true
		}
	case 0x1000:
		return OpJP, true
	case 0x2000:
		return OpCALL, true
	case 0x3000:
		return OpSEImm, true
	case 0x4000:
		return OpSNEImm, true
	case 0x5000:
		if n == 0x0 {
			return OpSEReg, true
		}
	case 0x6000:
		return OpLDImm, true
	case 0x7000:
		return OpADDImm, true
	case 0x8000:
		return decodeALU(n)
	case 0x9000:
		if n == 0x0 {
			return OpSNEReg, true
		}
	case 0xA000:
		return OpLDI, true
	case 0xB000:
		return OpJPV0, true
	case 0xC000:
		return OpRND, true
	case 0xD000:
		return OpDRW, true
	case 0xE000:
		switch kk {
		case 0x9E:
			return OpSKP, true
		case 0xA1:
			return OpSKNP, true
		}
	case 0xF000:
		return decodeMisc(kk)
	}
	return 0, false
}

// decodeALU identifies the 8xyn register operations
func decodeALU(n uint8) (Op, bool) {
	switch n {
	case 0x0:
		return OpLDReg, true
	case 0x1:
		return OpOR, true
	case 0x2:
		return OpAND, true
	case 0x3:
		return OpXOR, true
	case 0x4:
		return OpADDReg, true
	case 0x5:
		return OpSUB, true
	case 0x6:
		return OpSHR, true
	case 0x7:
		return OpSUBN, true
	case 0xE:
		return OpSHL, true
	}
	return 0, false
}

// decodeMisc identifies the Fxkk timer, keypad and memory operations
func decodeMisc(kk uint8) (Op, bool) {
	switch kk {
	case 0x07:
		return OpLDVxDT, true
	case 0x0A:
		return OpLDVxK, true
	case 0x15:
		return OpLDDTVx, true
	case 0x18:
		return OpLDSTVx, true
	case 0x1E:
		return OpADDIVx, true
	case 0x29:
		return OpLDFVx, true
	case 0x33:
		return OpLDBVx, true
	case 0x55:
		return OpLDIVx, true
	case 0x65:
		return OpLDVxI, true
	}
	return 0, false
}

// mnemonic looks up the instruction name in the retrogolib opcode table.
// The most specific matching pattern wins.
func mnemonic(opcode uint16) (string, bool) {
	var ins *chip8.Instruction
	best := -1
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Instruction == nil || op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		if n := bits.OnesCount16(uint16(op.Info.Mask)); n > best {
			ins, best = op.Instruction, n
		}
	}
	if ins == nil {
		return "", false
	}
	return ins.Name, true
}

// String returns the disassembly of the instruction
func (ins Instruction) String() string {
	name, ok := mnemonic(ins.Opcode)
	if !ok || ins.Op >= opCount {
		return fmt.Sprintf("DW $%04X", ins.Opcode)
	}
	name = strings.ToUpper(name)
	if params := ins.params(); params != "" {
		return name + " " + params
	}
	return name
}

// params formats the operands of the instruction
func (ins Instruction) params() string {
	x, y := ins.X, ins.Y
	switch ins.Op {
	case OpCLS, OpRET:
		return ""
	case OpJP, OpCALL:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("V%X, $%02X", x, ins.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("V%X, V%X", x, y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", x)
	case OpLDI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpJPV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, ins.N)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", x)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case OpADDIVx:
		return fmt.Sprintf("I, V%X", x)
	case OpLDFVx:
		return fmt.Sprintf("F, V%X", x)
	case OpLDBVx:
		return fmt.Sprintf("B, V%X", x)
	case OpLDIVx:
		return fmt.Sprintf("[I], V%X", x)
	case OpLDVxI:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
