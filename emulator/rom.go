package emulator

import (
	"os"

	"github.com/pkg/errors"

	"github.com/mnafees/c8vm/internal"
)

// Loader is implemented by machines accepting a raw program image
type Loader interface {
	Load(program []byte) error
}

// ReadProgram reads a CHIP-8 program from disk and checks that it fits in memory
func ReadProgram(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "loading program")
	}
	size := len(data)
	if size == 0 {
		return nil, errors.Errorf("loading program %s: file is empty", filename)
	}
	if size > internal.MaxProgramSize {
		return nil, errors.Wrapf(internal.ErrRomTooLarge, "loading program %s: %d bytes", filename, size)
	}
	return data, nil
}

// LoadProgram loads a given CHIP-8 program file into the machine's memory
func LoadProgram(vm Loader, filename string) error {
	data, err := ReadProgram(filename)
	if err != nil {
		return err
	}
	return errors.Wrapf(vm.Load(data), "loading program %s", filename)
}
