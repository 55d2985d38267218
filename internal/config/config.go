// Package config handles command line options and logger setup
package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/mnafees/c8vm/emulator"
)

// Options of the emulator programs
type Options struct {
	Program string // CHIP-8 program file
	Hz      int    // cycles executed per second
	Scale   int    // window pixels per CHIP-8 pixel
	Cycles  int    // cycles run by the headless runner
	Seed    int64  // random seed, 0 picks a time based one
	Debug   bool
	Quiet   bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and flag defaults
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	fmt.Fprintf(w, "usage: %s [options] <CHIP-8 program>\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, not including the program name
func ParseFlags(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	flags.IntVar(&opts.Hz, "hz", emulator.DefaultCycleRate, "number of cycles executed per second")
	flags.IntVar(&opts.Scale, "scale", 20, "size of a CHIP-8 pixel in window pixels")
	flags.IntVar(&opts.Cycles, "cycles", 1000, "number of cycles to execute in headless mode")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 for a time based seed")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if flags.NArg() != 1 {
		return opts, &UsageError{flags: flags}
	}
	opts.Program = flags.Arg(0)

	if err := validate(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func validate(opts Options) error {
	switch {
	case opts.Hz <= 0 || opts.Hz > emulator.MaxCycleRate:
		return errors.Errorf("invalid cycle rate %d, must be between 1 and %d", opts.Hz, emulator.MaxCycleRate)
	case opts.Scale <= 0:
		return errors.Errorf("invalid scale %d", opts.Scale)
	case opts.Cycles < 0:
		return errors.Errorf("invalid cycle count %d", opts.Cycles)
	}
	return nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
