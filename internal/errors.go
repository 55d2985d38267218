package internal

import "github.com/pkg/errors"

// Errors returned by Step and Load. They come wrapped with context such as
// the opcode and program counter, match them with errors.Is.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrIllegalOpcode  = errors.New("illegal opcode")
	ErrRomTooLarge    = errors.New("program size exceeds the maximum size")
)
