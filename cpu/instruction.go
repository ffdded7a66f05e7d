// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Instruction is a decoded instruction word.
//
// Op tags the instruction; only the operand fields used by the opcode's
// shape are set, all others are zero, so decoded instructions compare
// equal with ==.
type Instruction struct {
	Op     Opcode
	Reg0   uint8    // First register operand.
	Reg1   uint8    // Second register operand.
	Cond   CodeCond // Jump condition.
	Imm    uint8    // Unsigned immediate (interrupt number).
	Offset int8     // Signed immediate, relative to the fetch address.
	Word   uint16   // Undecodable word, for OP_INVALID.
}

// registerAt extracts the register field in slot 0 or 1.
func registerAt(word uint16, slot int) uint8 {
	return uint8((word >> (REG_SHIFT + REG_WIDTH*slot)) & REG_MASK)
}

// withRegister places reg in the register field of slot 0 or 1.
func withRegister(slot int, reg uint8) uint16 {
	return (uint16(reg) & REG_MASK) << (REG_SHIFT + REG_WIDTH*slot)
}

func unsignedImmediate(word uint16) uint8 {
	return uint8((word >> ARG_SHIFT) & ARG_MASK)
}

func signedImmediate(word uint16) int8 {
	return int8(unsignedImmediate(word))
}

func withImmediate(imm uint8) uint16 {
	return (uint16(imm) & ARG_MASK) << ARG_SHIFT
}

func jumpCondition(word uint16) CodeCond {
	return CodeCond((word >> JUMP_COND_SHIFT) & JUMP_COND_MASK)
}

func withJumpCondition(cond CodeCond) uint16 {
	return (uint16(cond) & JUMP_COND_MASK) << JUMP_COND_SHIFT
}

// MakeNop creates a no-op.
func MakeNop() Instruction {
	return Instruction{Op: OP_NOP}
}

// MakeOp creates an instruction without operands (nop, pushs, pops).
func MakeOp(op Opcode) Instruction {
	return Instruction{Op: op}
}

// MakeReg creates a single register instruction.
func MakeReg(op Opcode, reg uint8) Instruction {
	return Instruction{Op: op, Reg0: reg}
}

// MakeRegReg creates a two register instruction.
func MakeRegReg(op Opcode, reg0, reg1 uint8) Instruction {
	return Instruction{Op: op, Reg0: reg0, Reg1: reg1}
}

// MakeJump creates an absolute jump to the address held in reg.
func MakeJump(reg uint8, cond CodeCond) Instruction {
	return Instruction{Op: OP_JMP, Reg0: reg, Cond: cond}
}

// MakeInterrupt creates an interrupt request.
func MakeInterrupt(imm uint8) Instruction {
	return Instruction{Op: OP_INT, Imm: imm}
}

// MakeRelative creates a relative load or save of r0.
func MakeRelative(op Opcode, offset int8) Instruction {
	return Instruction{Op: op, Offset: offset}
}

// MakeJumpRelative creates a relative jump.
func MakeJumpRelative(offset int8, cond CodeCond) Instruction {
	return Instruction{Op: OP_JREL, Offset: offset, Cond: cond}
}

// MakeInvalid wraps an undecodable word.
func MakeInvalid(word uint16) Instruction {
	return Instruction{Op: OP_INVALID, Word: word}
}

// Decode decodes an instruction word. Every word decodes; words with a
// reserved opcode decode to OP_INVALID.
func Decode(word uint16) (inst Instruction) {
	op := Opcode(word & OPCODE_MASK)

	switch op.Shape() {
	case SHAPE_NONE:
		inst = MakeOp(op)
	case SHAPE_REG:
		inst = MakeReg(op, registerAt(word, 0))
	case SHAPE_REG_REG:
		inst = MakeRegReg(op, registerAt(word, 0), registerAt(word, 1))
	case SHAPE_REG_COND:
		inst = MakeJump(registerAt(word, 0), CodeCond(registerAt(word, 1)))
	case SHAPE_IMM:
		inst = MakeInterrupt(unsignedImmediate(word))
	case SHAPE_REL:
		inst = MakeRelative(op, signedImmediate(word))
	case SHAPE_REL_COND:
		inst = MakeJumpRelative(signedImmediate(word), jumpCondition(word))
	default:
		inst = MakeInvalid(word)
	}

	return
}

// Encode encodes the instruction as a word. OP_INVALID encodes as a
// no-op, and does not decode back to itself.
func (inst Instruction) Encode() (word uint16) {
	word = uint16(inst.Op) & OPCODE_MASK

	switch inst.Op.Shape() {
	case SHAPE_NONE:
	case SHAPE_REG:
		word |= withRegister(0, inst.Reg0)
	case SHAPE_REG_REG:
		word |= withRegister(0, inst.Reg0) | withRegister(1, inst.Reg1)
	case SHAPE_REG_COND:
		word |= withRegister(0, inst.Reg0) | withRegister(1, uint8(inst.Cond))
	case SHAPE_IMM:
		word |= withImmediate(inst.Imm)
	case SHAPE_REL:
		word |= withImmediate(uint8(inst.Offset))
	case SHAPE_REL_COND:
		word |= withImmediate(uint8(inst.Offset)) | withJumpCondition(inst.Cond)
	default:
		word = uint16(OP_NOP)
	}

	return
}

// String disassembles the instruction.
func (inst Instruction) String() string {
	switch inst.Op.Shape() {
	case SHAPE_NONE:
		return inst.Op.String()
	case SHAPE_REG:
		return fmt.Sprintf("%v %v", inst.Op, RegisterName(inst.Reg0))
	case SHAPE_REG_REG:
		return fmt.Sprintf("%v %v, %v", inst.Op, RegisterName(inst.Reg0), RegisterName(inst.Reg1))
	case SHAPE_REG_COND:
		return fmt.Sprintf("%v %v, %v", inst.Op, RegisterName(inst.Reg0), inst.Cond)
	case SHAPE_IMM:
		return fmt.Sprintf("%v 0x%02x", inst.Op, inst.Imm)
	case SHAPE_REL:
		return fmt.Sprintf("%v %+d", inst.Op, inst.Offset)
	case SHAPE_REL_COND:
		return fmt.Sprintf("%v %+d, %v", inst.Op, inst.Offset, inst.Cond)
	}

	return fmt.Sprintf("%v 0x%04x", OP_INVALID, inst.Word)
}
