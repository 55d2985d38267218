package main

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/mnafees/c8vm/emulator"
	"github.com/mnafees/c8vm/internal"
	"github.com/mnafees/c8vm/internal/config"
)

// Runs a CHIP-8 program without a window for a fixed number of cycles and
// prints the machine state afterwards. Use -debug to trace every instruction.
func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(filepath.Base(os.Args[0]), os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
			os.Exit(1)
		}
		config.CreateLogger(false, false).Fatal(err.Error())
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	vmOpts := []internal.Option{internal.WithLogger(logger)}
	if opts.Seed != 0 {
		vmOpts = append(vmOpts, internal.WithRandomSource(internal.NewMathRandSource(opts.Seed)))
	}
	vm := internal.NewC8VM(vmOpts...)
	if err := emulator.LoadProgram(vm, opts.Program); err != nil {
		logger.Fatal(err.Error())
	}

	executed := 0
	for ; executed < opts.Cycles && ctx.Err() == nil; executed++ {
		if err := vm.Step(); err != nil {
			logger.Error("Execution failed", log.Err(err), log.Int("cycle", executed))
			break
		}
	}

	logger.Info("Execution finished",
		log.String("file", opts.Program),
		log.Int("cycles", executed),
		log.String("mode", vm.Mode().String()))

	dumpState(os.Stdout, vm)
}

func dumpState(w io.Writer, vm *internal.C8VM) {
	fmt.Fprintf(w, "PC=%03X I=%03X SP=%d DT=%02X ST=%02X\n",
		vm.PC(), vm.I(), vm.SP(), vm.DelayTimer(), vm.SoundTimer())
	for x := uint8(0); x < 16; x++ {
		fmt.Fprintf(w, "V%X=%02X ", x, vm.V(x))
		if x%8 == 7 {
			fmt.Fprintln(w)
		}
	}

	display := vm.Display()
	border := "+" + strings.Repeat("-", internal.ScreenWidth) + "+"
	fmt.Fprintln(w, border)
	for _, row := range display {
		var sb strings.Builder
		for _, px := range row {
			if px == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(w, "|%s|\n", sb.String())
	}
	fmt.Fprintln(w, border)
}
