// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/vcpu16/translate"
)

var f = translate.From

var (
	// Cpu faults
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrDivisionByZero = errors.New(f("division by zero"))
)

// ErrInvalidJumpCondition is a jump with an unknown condition code.
type ErrInvalidJumpCondition CodeCond

func (err ErrInvalidJumpCondition) Error() string {
	return f("invalid jump condition %d", uint8(err))
}

// ErrUnreachable is an internal consistency failure of the CPU, and is
// never caused by the program being executed.
type ErrUnreachable string

func (err ErrUnreachable) Error() string {
	return f("unreachable: %v", string(err))
}

// Is matches any ErrUnreachable.
func (err ErrUnreachable) Is(target error) (ok bool) {
	_, ok = target.(ErrUnreachable)
	return
}
