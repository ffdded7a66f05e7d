package emulator

import (
	"errors"

	"github.com/ezrec/vcpu16/cpu"
	"github.com/ezrec/vcpu16/translate"
)

var f = translate.From

var (
	ErrImageOdd = errors.New(f("image has an odd number of bytes"))
)

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	Pc   uint16 // Address of the faulting instruction.
	Word uint16 // Faulting instruction word.
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%04x '%v' %v", err.Pc, cpu.Decode(err.Word), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
