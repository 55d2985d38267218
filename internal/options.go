package internal

import "github.com/retroenv/retrogolib/log"

// Option configures a C8VM at construction time
type Option func(*C8VM)

// WithRandomSource replaces the random byte source used by RND
func WithRandomSource(src RandomSource) Option {
	return func(vm *C8VM) {
		vm.rand = src
	}
}

// WithLogger enables debug tracing of every executed instruction
func WithLogger(logger *log.Logger) Option {
	return func(vm *C8VM) {
		vm.logger = logger
	}
}
