// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Instruction word layout.
const (
	OPCODE_MASK = 0x1f // Bits 0-4: opcode.

	REG_SHIFT = 5   // Bits 5-8: first register, bits 9-12: second register.
	REG_WIDTH = 4   // Width of a register field, and stride between them.
	REG_MASK  = 0xf // Mask of a register field, after shifting.

	JUMP_COND_SHIFT = 5   // Bits 5-7: relative jump condition.
	JUMP_COND_MASK  = 0x7 // Mask of the relative jump condition, after shifting.

	ARG_SHIFT = 8    // Bits 8-15: immediate argument.
	ARG_MASK  = 0xff // Mask of the immediate argument, after shifting.
)

// Opcode selects the instruction kind.
type Opcode uint8

const (
	OP_NOP     = Opcode(0)  // nop
	OP_PUSH    = Opcode(1)  // push
	OP_POP     = Opcode(2)  // pop
	OP_PUSHS   = Opcode(3)  // pushs
	OP_POPS    = Opcode(4)  // pops
	OP_MOVE    = Opcode(5)  // move
	OP_LD      = Opcode(6)  // ld
	OP_SAV     = Opcode(7)  // sav
	OP_ADD     = Opcode(8)  // add
	OP_SUB     = Opcode(9)  // sub
	OP_MUL     = Opcode(10) // mul
	OP_DIV     = Opcode(11) // div
	OP_CMP_EQ  = Opcode(12) // eq
	OP_CMP_NE  = Opcode(13) // ne
	OP_CMP_GT  = Opcode(14) // gt
	OP_CMP_LT  = Opcode(15) // lt
	OP_CMP_XOR = Opcode(16) // xor
	OP_CMP_NOT = Opcode(17) // not
	OP_JMP     = Opcode(18) // jmp
	OP_INT     = Opcode(19) // int
	OP_BSL     = Opcode(21) // bsl
	OP_BSR     = Opcode(22) // bsr
	OP_BNOT    = Opcode(23) // bnot
	OP_BXOR    = Opcode(24) // bxor
	OP_BAND    = Opcode(25) // band
	OP_BOR     = Opcode(26) // bor
	OP_BNOR    = Opcode(27) // bnor
	OP_LD_REL  = Opcode(28) // ldr
	OP_JREL    = Opcode(29) // jrel
	OP_SAV_REL = Opcode(30) // savr

	// OP_INVALID tags words whose opcode field is reserved (20, 31).
	// It is outside of the 5-bit opcode space.
	OP_INVALID = Opcode(0xff) // invalid
)

// CodeShape describes which operand fields an opcode uses.
type CodeShape int

const (
	SHAPE_NONE     = CodeShape(iota) // no operands
	SHAPE_REG                        // reg0
	SHAPE_REG_REG                    // reg0, reg1
	SHAPE_REG_COND                   // reg0, condition in the reg1 field
	SHAPE_IMM                        // unsigned 8-bit argument
	SHAPE_REL                        // signed 8-bit argument
	SHAPE_REL_COND                   // signed 8-bit argument, 3-bit condition
	SHAPE_INVALID                    // raw word
)

type opcodeInfo struct {
	name  string
	shape CodeShape
}

var opcodeTable = map[Opcode]opcodeInfo{
	OP_NOP:     {"nop", SHAPE_NONE},
	OP_PUSH:    {"push", SHAPE_REG},
	OP_POP:     {"pop", SHAPE_REG},
	OP_PUSHS:   {"pushs", SHAPE_NONE},
	OP_POPS:    {"pops", SHAPE_NONE},
	OP_MOVE:    {"move", SHAPE_REG_REG},
	OP_LD:      {"ld", SHAPE_REG_REG},
	OP_SAV:     {"sav", SHAPE_REG_REG},
	OP_ADD:     {"add", SHAPE_REG_REG},
	OP_SUB:     {"sub", SHAPE_REG_REG},
	OP_MUL:     {"mul", SHAPE_REG_REG},
	OP_DIV:     {"div", SHAPE_REG_REG},
	OP_CMP_EQ:  {"eq", SHAPE_REG_REG},
	OP_CMP_NE:  {"ne", SHAPE_REG_REG},
	OP_CMP_GT:  {"gt", SHAPE_REG_REG},
	OP_CMP_LT:  {"lt", SHAPE_REG_REG},
	OP_CMP_XOR: {"xor", SHAPE_REG_REG},
	OP_CMP_NOT: {"not", SHAPE_REG},
	OP_JMP:     {"jmp", SHAPE_REG_COND},
	OP_INT:     {"int", SHAPE_IMM},
	OP_BSL:     {"bsl", SHAPE_REG_REG},
	OP_BSR:     {"bsr", SHAPE_REG_REG},
	OP_BNOT:    {"bnot", SHAPE_REG},
	OP_BXOR:    {"bxor", SHAPE_REG_REG},
	OP_BAND:    {"band", SHAPE_REG_REG},
	OP_BOR:     {"bor", SHAPE_REG_REG},
	OP_BNOR:    {"bnor", SHAPE_REG_REG},
	OP_LD_REL:  {"ldr", SHAPE_REL},
	OP_JREL:    {"jrel", SHAPE_REL_COND},
	OP_SAV_REL: {"savr", SHAPE_REL},
	OP_INVALID: {"invalid", SHAPE_INVALID},
}

// Valid returns true if the opcode is a defined instruction.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok && op != OP_INVALID
}

// Shape returns the operand shape of the opcode.
func (op Opcode) Shape() CodeShape {
	info, ok := opcodeTable[op]
	if !ok {
		return SHAPE_INVALID
	}
	return info.shape
}

func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return fmt.Sprintf("Opcode(%d)", uint8(op))
	}
	return info.name
}

// Opcodes returns all of the defined opcodes, in encoding order.
func Opcodes() (ops []Opcode) {
	for op := range Opcode(OPCODE_MASK + 1) {
		if op.Valid() {
			ops = append(ops, op)
		}
	}
	return
}

// CodeCond is a jump condition code.
type CodeCond uint8

const (
	COND_ALWAYS      = CodeCond(0) // always
	COND_IF_TRUE     = CodeCond(1) // true
	COND_IF_FALSE    = CodeCond(2) // false
	COND_IF_OVERFLOW = CodeCond(3) // overflow
)

var condNames = [...]string{"always", "true", "false", "overflow"}

func (cond CodeCond) String() string {
	if int(cond) < len(condNames) {
		return condNames[cond]
	}
	return fmt.Sprintf("cond%d", uint8(cond))
}
