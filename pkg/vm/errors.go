package vm

import "github.com/pkg/errors"

// Errors returned by the VM. They may be wrapped with extra context so use
// errors.Cause() when comparing.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrROMTooLarge    = errors.New("rom too large")
	ErrROMRead        = errors.New("rom could not be read")
)
