package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	addrMask       = totalMemory - 1
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
	stackSize      = 16
	opcodeSize     = 2
	flagReg        = 0xF

	// ADD I, Vx sets VF once I passes this address
	regIOverflowAddr = 0x0F00

	ProgramStart   = pcStartAddr
	MaxProgramSize = maxProgramSize
)

// Mode is the execution state of the VM
type Mode uint8

// VM modes
const (
	Running Mode = iota
	AwaitingKey
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return "unknown"
	}
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode     uint16             // 16-bit opcode of the last fetched instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer
	stack      [stackSize]uint16  // A stack of 16 16-bit return addresses
	memory     [totalMemory]uint8 // 4 KB global memory

	pixels  Display // 64 px x 32 px display
	changed bool    // set when the last cycle touched the display

	// A 16-bit integer to hold the current key values in the form of individual bits.
	// So when 0 is pushed in the keypad, the 0'th bit will be set and so on.
	key uint16

	waiting bool  // blocked on LD Vx, K
	waitReg uint8 // register receiving the pressed key

	program []byte // last loaded program, restored by Reset
	rand    RandomSource
	logger  *log.Logger
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts ...Option) *C8VM {
	vm := &C8VM{}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.rand == nil {
		vm.rand = defaultRandomSource()
	}
	vm.initialize()
	return vm
}

func (vm *C8VM) initialize() {
	*vm = C8VM{
		pc:      pcStartAddr,
		program: vm.program,
		rand:    vm.rand,
		logger:  vm.logger,
	}
	copy(vm.memory[fontStartAddr:], fontset[:])
}

// Load copies a CHIP-8 program into the VM's memory at the program start address.
// Programs larger than the available memory are truncated and ErrRomTooLarge is returned.
func (vm *C8VM) Load(program []byte) error {
	n := copy(vm.memory[pcStartAddr:], program)
	vm.program = make([]byte, n)
	copy(vm.program, program[:n])
	if n != len(program) {
		return errors.Wrapf(ErrRomTooLarge, "%d bytes, %d available", len(program), maxProgramSize)
	}
	return nil
}

// Reset puts the VM back into its initial state and reloads the last program
func (vm *C8VM) Reset() {
	vm.initialize()
	copy(vm.memory[pcStartAddr:], vm.program)
}

// Step executes a single machine cycle
func (vm *C8VM) Step() error {
	vm.changed = false

	if vm.waiting {
		vm.pollKeypad()
		return nil
	}

	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}

	vm.opcode = vm.fetch()
	ins, err := Decode(vm.opcode)
	if err != nil {
		return errors.Wrapf(err, "@pc=%03X", vm.pc)
	}

	if vm.logger != nil {
		vm.logger.Debug("Executing instruction",
			log.Hex("pc", vm.pc),
			log.Hex("opcode", vm.opcode),
			log.String("instruction", ins.String()))
	}

	if err := handlers[ins.Op](vm, ins); err != nil {
		return errors.Wrapf(err, "%04X @pc=%03X", vm.opcode, vm.pc)
	}
	return nil
}

// fetch reads the big-endian opcode at the program counter
func (vm *C8VM) fetch() uint16 {
	return uint16(vm.read(vm.pc))<<8 | uint16(vm.read(vm.pc+1))
}

// read and write wrap around the 12-bit address space
func (vm *C8VM) read(addr uint16) uint8 {
	return vm.memory[addr&addrMask]
}

func (vm *C8VM) write(addr uint16, value uint8) {
	vm.memory[addr&addrMask] = value
}

// Mode returns whether the VM is running or blocked on a key press
func (vm *C8VM) Mode() Mode {
	if vm.waiting {
		return AwaitingKey
	}
	return Running
}

// Opcode returns the last fetched opcode
func (vm *C8VM) Opcode() uint16 {
	return vm.opcode
}

// V returns the value of register Vx
func (vm *C8VM) V(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// I returns the value of the I register
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// SP returns the current call stack depth
func (vm *C8VM) SP() uint8 {
	return vm.sp
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// SoundActive returns whether the buzzer should be sounding
func (vm *C8VM) SoundActive() bool {
	return vm.soundTimer > 0
}

// Memory returns the byte stored at the given address
func (vm *C8VM) Memory(addr uint16) uint8 {
	return vm.read(addr)
}
