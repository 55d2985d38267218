package emulator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/mnafees/c8vm/internal"
)

// Cycle rates in cycles per second
const (
	DefaultCycleRate = 500
	MaxCycleRate     = int(time.Second) // one cycle per nanosecond tick
)

// Keypad receives the key events of a frontend
type Keypad interface {
	KeyDown(code uint8)
	KeyUp(code uint8)
}

// Machine is the part of the VM driven by the Runner
type Machine interface {
	Keypad
	Step() error
	Changed() bool
	Display() internal.Display
	SoundActive() bool
}

// Frontend presents the machine to the user
type Frontend interface {
	// PollEvents forwards pending input to the keypad and reports whether
	// the user asked to quit.
	PollEvents(keypad Keypad) bool
	Render(display internal.Display, soundActive bool)
}

// Runner steps a machine at a fixed rate and repaints the frontend on change
type Runner struct {
	machine  Machine
	frontend Frontend
	logger   *log.Logger
	period   time.Duration
	cycles   int
}

// NewRunner returns a runner executing hz cycles per second
func NewRunner(machine Machine, frontend Frontend, logger *log.Logger, hz int) (*Runner, error) {
	if hz <= 0 || hz > MaxCycleRate {
		return nil, errors.Errorf("invalid cycle rate %d, must be between 1 and %d", hz, MaxCycleRate)
	}
	return &Runner{
		machine:  machine,
		frontend: frontend,
		logger:   logger,
		period:   time.Second / time.Duration(hz),
	}, nil
}

// Cycles returns the number of cycles executed so far
func (r *Runner) Cycles() int {
	return r.cycles
}

// Run is the main application loop. It returns nil when the frontend
// asks to quit, the context error on cancellation or the first VM error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	r.logger.Debug("Starting emulation", log.String("period", r.period.String()))

	sound := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if r.frontend.PollEvents(r.machine) {
			r.logger.Debug("Quit requested", log.Int("cycles", r.cycles))
			return nil
		}

		if err := r.machine.Step(); err != nil {
			return errors.Wrapf(err, "cycle %d", r.cycles)
		}
		r.cycles++

		active := r.machine.SoundActive()
		if r.machine.Changed() || active != sound {
			r.frontend.Render(r.machine.Display(), active)
			sound = active
		}
	}
}
