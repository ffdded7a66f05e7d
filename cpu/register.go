// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Register file indices.
const (
	REG_GENERAL_COUNT = 13 // r0-r12 are general purpose.

	REG_FLAGS = 13 // Condition flags.
	REG_PC    = 14 // Program counter.
	REG_SP    = 15 // Stack pointer.

	REG_COUNT = 16
)

// Condition flag bits of REG_FLAGS.
const (
	FLAG_OVERFLOW   = uint16(1 << 0)
	FLAG_COMPARISON = uint16(1 << 1)
)

// Registers is the register file.
type Registers struct {
	General [REG_GENERAL_COUNT]uint16 // r0-r12
	Flags   uint16                    // Condition flags.
	Pc      uint16                    // Address of the next instruction.
	Sp      uint16                    // Next free stack slot.
}

// Get returns the register at a 4-bit index.
func (regs *Registers) Get(index uint8) uint16 {
	switch index & REG_MASK {
	case REG_FLAGS:
		return regs.Flags
	case REG_PC:
		return regs.Pc
	case REG_SP:
		return regs.Sp
	}
	return regs.General[index&REG_MASK]
}

// Set writes the register at a 4-bit index.
func (regs *Registers) Set(index uint8, value uint16) {
	switch index & REG_MASK {
	case REG_FLAGS:
		regs.Flags = value
	case REG_PC:
		regs.Pc = value
	case REG_SP:
		regs.Sp = value
	default:
		regs.General[index&REG_MASK] = value
	}
}

// Flag returns true if all of the flag bits are set.
func (regs *Registers) Flag(flag uint16) bool {
	return regs.Flags&flag == flag
}

// SetFlag sets or clears the flag bits.
func (regs *Registers) SetFlag(flag uint16, on bool) {
	if on {
		regs.Flags |= flag
	} else {
		regs.Flags &^= flag
	}
}

// Reset clears the register file and sets the program counter.
func (regs *Registers) Reset(pc uint16) {
	*regs = Registers{Pc: pc}
}

// RegisterName returns the disassembly name of a register index.
func RegisterName(index uint8) string {
	switch index & REG_MASK {
	case REG_FLAGS:
		return "flags"
	case REG_PC:
		return "pc"
	case REG_SP:
		return "sp"
	}
	return fmt.Sprintf("r%d", index&REG_MASK)
}
