package machine

import (
	"github.com/ezrec/vcpu16/translate"
)

var f = translate.From

// ErrMachineField is a machine setting that is missing its expected type
// or range.
type ErrMachineField struct {
	Field string
	Err   error
}

func (err *ErrMachineField) Error() string {
	return f("machine '%v' %v", err.Field, err.Err)
}

func (err *ErrMachineField) Unwrap() error {
	return err.Err
}

// ErrOperandRange is an encoder argument outside of its field width.
type ErrOperandRange struct {
	Builtin string
	Operand string
	Value   int
}

func (err ErrOperandRange) Error() string {
	return f("%v: %v %d out of range", err.Builtin, err.Operand, err.Value)
}

// ErrWordRange is the decimal text of a value that does not fit in a word.
type ErrWordRange string

func (err ErrWordRange) Error() string {
	return f("%v is not a 16-bit word", string(err))
}

// ErrNotInteger is a script value of the named type where an integer is needed.
type ErrNotInteger string

func (err ErrNotInteger) Error() string {
	return f("%v is not an integer", string(err))
}

// ErrNotSequence is a script value of the named type where a list of words is needed.
type ErrNotSequence string

func (err ErrNotSequence) Error() string {
	return f("%v is not a sequence", string(err))
}
