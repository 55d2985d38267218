package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/mnafees/c8vm/emulator"
	"github.com/mnafees/c8vm/internal"
	"github.com/mnafees/c8vm/internal/config"
	"github.com/mnafees/c8vm/pkg/sdl"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := app.Context()

	opts, err := config.ParseFlags(filepath.Base(os.Args[0]), os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
			return 1
		}
		config.CreateLogger(false, false).Error(err.Error())
		return 1
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	vmOpts := []internal.Option{internal.WithLogger(logger)}
	if opts.Seed != 0 {
		vmOpts = append(vmOpts, internal.WithRandomSource(internal.NewMathRandSource(opts.Seed)))
	}
	vm := internal.NewC8VM(vmOpts...)
	if err := emulator.LoadProgram(vm, opts.Program); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		return 1
	}

	io := sdl.NewIO(opts.Scale)
	runner, err := emulator.NewRunner(vm, io, logger, opts.Hz)
	if err != nil {
		logger.Error("Creating runner failed", log.Err(err))
		return 1
	}

	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		logger.Error("Setting up window failed", log.Err(err))
		return 1
	}
	defer io.Destroy()

	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Program),
		log.Int("hz", opts.Hz))

	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return 0
		}
		logger.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}
