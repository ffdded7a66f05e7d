// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements bounds checked, word addressed memory.
package memory

import (
	"slices"
)

// Bus is the access contract the CPU holds on main memory.
type Bus interface {
	Len() uint16
	Get(pos uint16) (value uint16, err error)
	Set(pos uint16, value uint16) (err error)
	GetRange(pos uint16, count uint16) (values []uint16, err error)
	SetRange(pos uint16, values []uint16) (err error)
}

var _ Bus = (*Memory)(nil)

// Memory is a fixed length array of words, owned by a single user.
//
// A length is itself a word, so address 0xffff is never mapped.
type Memory struct {
	data []uint16
}

// NewMemory creates a zeroed memory of size words.
func NewMemory(size uint16) (mem *Memory) {
	mem = &Memory{
		data: make([]uint16, size),
	}

	return
}

// Len returns the number of words in the memory.
func (mem *Memory) Len() uint16 {
	return uint16(len(mem.data))
}

// Get returns the word at pos.
func (mem *Memory) Get(pos uint16) (value uint16, err error) {
	if int(pos) >= len(mem.data) {
		err = ErrPointerOutOfRange{Length: mem.Len(), Pos: pos}
		return
	}

	value = mem.data[pos]
	return
}

// Set writes the word at pos.
func (mem *Memory) Set(pos uint16, value uint16) (err error) {
	if int(pos) >= len(mem.data) {
		err = ErrPointerOutOfRange{Length: mem.Len(), Pos: pos}
		return
	}

	mem.data[pos] = value
	return
}

// window checks that [pos, pos+count) lies within the memory.
func (mem *Memory) window(pos uint16, count int) (end int, err error) {
	end = int(pos) + count
	if end > len(mem.data) {
		err = ErrPointerRangeOverflow{Length: mem.Len(), Pos: pos, End: uint32(end)}
	}
	return
}

// GetRange returns a copy of the count words starting at pos.
func (mem *Memory) GetRange(pos uint16, count uint16) (values []uint16, err error) {
	end, err := mem.window(pos, int(count))
	if err != nil {
		return
	}

	values = slices.Clone(mem.data[pos:end])
	return
}

// SetRange writes values starting at pos. Nothing is written if the
// window does not fit.
func (mem *Memory) SetRange(pos uint16, values []uint16) (err error) {
	end, err := mem.window(pos, len(values))
	if err != nil {
		return
	}

	copy(mem.data[pos:end], values)
	return
}

// Words returns a copy of the whole memory.
func (mem *Memory) Words() []uint16 {
	return slices.Clone(mem.data)
}

// Clear zeros the memory.
func (mem *Memory) Clear() {
	clear(mem.data)
}
