// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"github.com/ezrec/vcpu16/memory"
)

// Stack is the CPU's private stack memory.
//
// The stack pointer lives in the register file, so every operation takes
// the current pointer and returns the next one. The caller only commits
// the new pointer when err is nil.
type Stack struct {
	Data *memory.Memory
}

// NewStack creates a stack of size words.
func NewStack(size uint16) Stack {
	return Stack{Data: memory.NewMemory(size)}
}

// Push writes value at sp.
func (s *Stack) Push(sp uint16, value uint16) (next uint16, err error) {
	err = s.Data.Set(sp, value)
	if err != nil {
		err = ErrStackOverflow
		return
	}

	next = sp + 1
	return
}

// Pop reads the value below sp.
func (s *Stack) Pop(sp uint16) (value uint16, next uint16, err error) {
	if sp == 0 {
		err = ErrStackUnderflow
		return
	}

	next = sp - 1
	value, err = s.Data.Get(next)
	if err != nil {
		err = ErrUnreachable(f("stack pop at 0x%04x after bounds check: %v", next, err))
	}
	return
}

// PushRange writes values at sp as a single block.
func (s *Stack) PushRange(sp uint16, values []uint16) (next uint16, err error) {
	err = s.Data.SetRange(sp, values)
	if err != nil {
		err = ErrStackOverflow
		return
	}

	next = sp + uint16(len(values))
	return
}

// PopRange reads the count values below sp as a single block.
func (s *Stack) PopRange(sp uint16, count uint16) (values []uint16, next uint16, err error) {
	if sp < count {
		err = ErrStackUnderflow
		return
	}

	next = sp - count
	values, err = s.Data.GetRange(next, count)
	if err != nil {
		err = ErrUnreachable(f("stack pop of %d words at 0x%04x after bounds check: %v", count, next, err))
	}
	return
}

// Peek returns the value on top of the stack, without popping it.
func (s *Stack) Peek(sp uint16) (value uint16, ok bool) {
	value, _, err := s.Pop(sp)
	ok = err == nil
	return
}

// Len returns the capacity of the stack.
func (s *Stack) Len() uint16 {
	return s.Data.Len()
}

// Reset clears the stack contents.
func (s *Stack) Reset() {
	s.Data.Clear()
}
