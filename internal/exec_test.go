package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpCLS(t *testing.T) {
	vm := newTestVM(t, 0x00E0)
	vm.pixels[3][7] = 1

	steps(t, vm, 1)
	assert.Equal(t, Display{}, vm.Display())
	assert.True(t, vm.Changed())
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestLoadAndAddImmediate(t *testing.T) {
	vm := newTestVM(t, 0x6005, 0x7010)
	vm.regV[flagReg] = 0xAA

	steps(t, vm, 2)
	assert.Equal(t, uint8(0x15), vm.V(0))
	assert.Equal(t, uint8(0xAA), vm.V(flagReg))

	vm = newTestVM(t, 0x7A02)
	vm.regV[0xA] = 0xFF
	steps(t, vm, 1)
	assert.Equal(t, uint8(0x01), vm.V(0xA))
	assert.Equal(t, uint8(0), vm.V(flagReg))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		result uint8
		flag   uint8
	}{
		{"ld", 0x8010, 0x12, 0x34, 0x34, 0x77},
		{"or", 0x8011, 0xF0, 0x0F, 0xFF, 0x77},
		{"and", 0x8012, 0xF3, 0x3F, 0x33, 0x77},
		{"xor", 0x8013, 0xFF, 0x0F, 0xF0, 0x77},
		{"add overflow", 0x8014, 0xFF, 0x01, 0x00, 1},
		{"add", 0x8014, 0x10, 0x01, 0x11, 0},
		{"sub borrow", 0x8015, 0x01, 0x02, 0xFF, 0},
		{"sub equal", 0x8015, 0x02, 0x02, 0x00, 0},
		{"sub", 0x8015, 0x05, 0x02, 0x03, 1},
		{"shr odd", 0x8016, 0x05, 0x00, 0x02, 1},
		{"shr even", 0x8016, 0x04, 0x00, 0x02, 0},
		{"subn", 0x8017, 0x02, 0x05, 0x03, 1},
		{"subn borrow", 0x8017, 0x05, 0x02, 0xFD, 0},
		{"shl high bit", 0x801E, 0x81, 0x00, 0x02, 1},
		{"shl", 0x801E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[0] = tt.vx
			vm.regV[1] = tt.vy
			vm.regV[flagReg] = 0x77

			steps(t, vm, 1)
			assert.Equal(t, tt.result, vm.V(0))
			assert.Equal(t, tt.flag, vm.V(flagReg))
			assert.Equal(t, uint16(0x202), vm.PC())
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		v0, v1 uint8
		key    int
		pc     uint16
	}{
		{"se imm taken", 0x3042, 0x42, 0, -1, 0x204},
		{"se imm", 0x3042, 0x41, 0, -1, 0x202},
		{"sne imm taken", 0x4042, 0x41, 0, -1, 0x204},
		{"sne imm", 0x4042, 0x42, 0, -1, 0x202},
		{"se reg taken", 0x5010, 7, 7, -1, 0x204},
		{"se reg", 0x5010, 7, 8, -1, 0x202},
		{"sne reg taken", 0x9010, 7, 8, -1, 0x204},
		{"sne reg", 0x9010, 7, 7, -1, 0x202},
		{"skp taken", 0xE09E, 0xB, 0, 0xB, 0x204},
		{"skp", 0xE09E, 0xB, 0, 0xC, 0x202},
		{"sknp taken", 0xE0A1, 0xB, 0, 0xC, 0x204},
		{"sknp", 0xE0A1, 0xB, 0, 0xB, 0x202},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[0] = tt.v0
			vm.regV[1] = tt.v1
			if tt.key >= 0 {
				vm.KeyDown(uint8(tt.key))
			}

			steps(t, vm, 1)
			assert.Equal(t, tt.pc, vm.PC())
		})
	}
}

func TestJumps(t *testing.T) {
	vm := newTestVM(t, 0x1345)
	steps(t, vm, 1)
	assert.Equal(t, uint16(0x345), vm.PC())

	vm = newTestVM(t, 0xB300)
	vm.regV[0] = 0x12
	steps(t, vm, 1)
	assert.Equal(t, uint16(0x312), vm.PC())
	assert.Equal(t, uint8(0), vm.SP())
}

func TestCallAndReturn(t *testing.T) {
	vm := newTestVM(t, 0x2300)
	vm.memory[0x300] = 0x00
	vm.memory[0x301] = 0xEE

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x300), vm.PC())
	assert.Equal(t, uint8(1), vm.SP())

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(0), vm.SP())
}

func TestStackOverflow(t *testing.T) {
	// CALL 0x200 calls itself forever
	vm := newTestVM(t, 0x2200)

	steps(t, vm, stackSize)
	assert.Equal(t, uint8(stackSize), vm.SP())

	err := vm.Step()
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, uint8(stackSize), vm.SP())
	assert.Equal(t, uint16(0x200), vm.PC())
}

func TestStackUnderflow(t *testing.T) {
	vm := newTestVM(t, 0x00EE)

	err := vm.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStackUnderflow)
	assert.Contains(t, err.Error(), "00EE")
	assert.Equal(t, uint8(0), vm.SP())
}

func TestLoadI(t *testing.T) {
	vm := newTestVM(t, 0xA123, 0xF01E)
	vm.regV[0] = 0x10

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x123), vm.I())

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x133), vm.I())
	assert.Equal(t, uint8(0), vm.V(flagReg))
}

func TestAddIOverflow(t *testing.T) {
	tests := []struct {
		name string
		i    uint16
		v0   uint8
		flag uint8
	}{
		{"at bound", 0xEFF, 0x01, 0},
		{"past bound", 0xF00, 0x01, 1},
		{"below bound", 0x100, 0xFF, 0},
		{"past address space", 0xFFF, 0x02, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, 0xF01E)
			vm.regI = tt.i
			vm.regV[0] = tt.v0

			steps(t, vm, 1)
			assert.Equal(t, tt.i+uint16(tt.v0), vm.I())
			assert.Equal(t, tt.flag, vm.V(flagReg))
		})
	}
}

func TestRandom(t *testing.T) {
	vm := NewC8VM(WithRandomSource(fixedRand(0xA5)))
	require.NoError(t, vm.Load(program(0xC30F, 0xC4FF)))

	steps(t, vm, 2)
	assert.Equal(t, uint8(0x05), vm.V(3))
	assert.Equal(t, uint8(0xA5), vm.V(4))
}

func TestMathRandSourceIsDeterministic(t *testing.T) {
	a := NewMathRandSource(42)
	b := NewMathRandSource(42)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.RandomByte(), b.RandomByte())
	}
}

func TestFontAddress(t *testing.T) {
	vm := newTestVM(t, 0xF029)
	vm.regV[0] = 0xA

	steps(t, vm, 1)
	assert.Equal(t, uint16(50), vm.I())
	assert.Equal(t, uint8(0xF0), vm.Memory(vm.I()))
}

func TestBCD(t *testing.T) {
	vm := newTestVM(t, 0xF033)
	vm.regV[0] = 234
	vm.regI = 0x300

	steps(t, vm, 1)
	assert.Equal(t, uint8(2), vm.Memory(0x300))
	assert.Equal(t, uint8(3), vm.Memory(0x301))
	assert.Equal(t, uint8(4), vm.Memory(0x302))
	assert.Equal(t, uint16(0x300), vm.I())
}

func TestStoreAndLoadRegisters(t *testing.T) {
	vm := newTestVM(t, 0xF355, 0xF265)
	for i := uint8(0); i < 16; i++ {
		vm.regV[i] = 0x10 + i
	}
	vm.regI = 0x400

	steps(t, vm, 1)
	assert.Equal(t, uint8(0x10), vm.Memory(0x400))
	assert.Equal(t, uint8(0x13), vm.Memory(0x403))
	assert.Equal(t, uint8(0x00), vm.Memory(0x404))
	assert.Equal(t, uint16(0x400), vm.I())

	vm.memory[0x400] = 0xAA
	vm.memory[0x401] = 0xBB
	vm.memory[0x402] = 0xCC
	vm.memory[0x403] = 0xDD
	steps(t, vm, 1)
	assert.Equal(t, uint8(0xAA), vm.V(0))
	assert.Equal(t, uint8(0xBB), vm.V(1))
	assert.Equal(t, uint8(0xCC), vm.V(2))
	assert.Equal(t, uint8(0x13), vm.V(3))
}

func TestStoreRegistersWrapsAddressSpace(t *testing.T) {
	vm := newTestVM(t, 0xF155)
	vm.regV[0] = 0x11
	vm.regV[1] = 0x22
	vm.regI = 0xFFF

	steps(t, vm, 1)
	assert.Equal(t, uint8(0x11), vm.Memory(0xFFF))
	assert.Equal(t, uint8(0x22), vm.Memory(0x000))
}

func TestHandlersCoverEveryOp(t *testing.T) {
	for op := Op(0); op < opCount; op++ {
		assert.NotNil(t, handlers[op], "missing handler for op %d", op)
	}
}
