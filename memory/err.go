// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"github.com/ezrec/vcpu16/translate"
)

var f = translate.From

// ErrPointerOutOfRange is a single word access outside of memory.
type ErrPointerOutOfRange struct {
	Length uint16 // Length of the memory, in words.
	Pos    uint16 // Requested address.
}

func (err ErrPointerOutOfRange) Error() string {
	return f("pointer 0x%04x out of range (length 0x%04x)", err.Pos, err.Length)
}

// ErrPointerRangeOverflow is a range access whose window does not fit in memory.
type ErrPointerRangeOverflow struct {
	Length uint16 // Length of the memory, in words.
	Pos    uint16 // First address of the window.
	End    uint32 // One past the last address of the window.
}

func (err ErrPointerRangeOverflow) Error() string {
	return f("range 0x%04x..0x%05x overflows memory (length 0x%04x)", err.Pos, err.End, err.Length)
}
