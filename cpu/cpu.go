// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/vcpu16/memory"
)

// PC_HALTED is the program counter set by an instruction fetch fault,
// before the step advances it.
// No memory maps this address, so a halted CPU stays halted.
const PC_HALTED = uint16(0xffff)

var _cpu_defines = map[string]string{
	"REG_FLAGS":        fmt.Sprintf("%d", REG_FLAGS),
	"REG_PC":           fmt.Sprintf("%d", REG_PC),
	"REG_SP":           fmt.Sprintf("%d", REG_SP),
	"FLAG_OVERFLOW":    fmt.Sprintf("0x%x", FLAG_OVERFLOW),
	"FLAG_COMPARISON":  fmt.Sprintf("0x%x", FLAG_COMPARISON),
	"PC_HALTED":        fmt.Sprintf("0x%x", PC_HALTED),
	"COND_ALWAYS":      fmt.Sprintf("%d", COND_ALWAYS),
	"COND_IF_TRUE":     fmt.Sprintf("%d", COND_IF_TRUE),
	"COND_IF_FALSE":    fmt.Sprintf("%d", COND_IF_FALSE),
	"COND_IF_OVERFLOW": fmt.Sprintf("%d", COND_IF_OVERFLOW),
}

// Cpu is the simulation context of the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register Registers // Register file.
	Stack    Stack     // Private stack memory.

	Ticks int // Executed instruction counter.

	memory memory.Bus
	halted bool // Last step faulted on the instruction fetch.
}

// NewCpu creates a CPU executing from mem, starting at pc, with a
// private stack of stackSize words.
func NewCpu(mem memory.Bus, pc uint16, stackSize uint16) (cpu *Cpu) {
	cpu = &Cpu{
		Stack:  NewStack(stackSize),
		memory: mem,
	}

	cpu.Register.Reset(pc)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Memory returns the main memory the CPU executes from.
func (cpu *Cpu) Memory() memory.Bus {
	return cpu.memory
}

// Halted returns true if the last step faulted on the instruction fetch.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Reset the CPU state.
// - Clears the registers and the stack.
// - Zeros the tick counter.
// - Sets the program counter.
func (cpu *Cpu) Reset(pc uint16) {
	if cpu.Verbose {
		log.Printf("cpu: reset pc=0x%04x", pc)
	}

	cpu.Register.Reset(pc)
	cpu.Stack.Reset()
	cpu.Ticks = 0
	cpu.halted = false
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for index := range uint8(REG_COUNT) {
		text += fmt.Sprintf("% 5s: %04X\n", RegisterName(index), cpu.Register.Get(index))
	}

	top := "----"
	if value, ok := cpu.Stack.Peek(cpu.Register.Sp); ok {
		top = fmt.Sprintf("%04X", value)
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", top)

	return
}

// Step fetches, decodes and executes a single instruction, then advances
// the program counter.
//
// A fetch fault sets the program counter to PC_HALTED, which the advance
// wraps to 0, and marks the CPU as Halted. Any other fault still advances
// the program counter, so the caller may keep stepping.
func (cpu *Cpu) Step() (err error) {
	word, err := cpu.memory.Get(cpu.Register.Pc)
	cpu.halted = err != nil
	if cpu.halted {
		if cpu.Verbose {
			log.Printf("%04x: fetch: %v", cpu.Register.Pc, err)
		}
		cpu.Register.Pc = PC_HALTED
	} else {
		err = cpu.Execute(Decode(word))
		cpu.Ticks++
	}

	cpu.Register.Pc++

	return
}

// relative returns the address offset from the current program counter.
func (cpu *Cpu) relative(offset int8) uint16 {
	return cpu.Register.Pc + uint16(int16(offset))
}

// condition evaluates a jump condition against the flags.
func (cpu *Cpu) condition(cond CodeCond) (taken bool, err error) {
	regs := &cpu.Register

	switch cond {
	case COND_ALWAYS:
		taken = true
	case COND_IF_TRUE:
		taken = regs.Flag(FLAG_COMPARISON)
	case COND_IF_FALSE:
		taken = !regs.Flag(FLAG_COMPARISON)
	case COND_IF_OVERFLOW:
		taken = regs.Flag(FLAG_OVERFLOW)
	default:
		err = ErrInvalidJumpCondition(cond)
	}

	return
}

// Execute executes a single decoded instruction, without advancing the
// program counter.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Register.Pc, inst)
	}

	regs := &cpu.Register
	a := regs.Get(inst.Reg0)
	b := regs.Get(inst.Reg1)

	switch inst.Op {
	case OP_NOP, OP_INT, OP_INVALID:
		// No defined behaviour.
	case OP_PUSH:
		var sp uint16
		sp, err = cpu.Stack.Push(regs.Sp, a)
		if err != nil {
			return
		}
		regs.Sp = sp
	case OP_POP:
		var value, sp uint16
		value, sp, err = cpu.Stack.Pop(regs.Sp)
		if err != nil {
			return
		}
		regs.Sp = sp
		regs.Set(inst.Reg0, value)
	case OP_PUSHS:
		var sp uint16
		sp, err = cpu.Stack.PushRange(regs.Sp, regs.General[:])
		if err != nil {
			return
		}
		regs.Sp = sp
	case OP_POPS:
		var values []uint16
		var sp uint16
		values, sp, err = cpu.Stack.PopRange(regs.Sp, REG_GENERAL_COUNT)
		if err != nil {
			return
		}
		regs.Sp = sp
		copy(regs.General[:], values)
	case OP_MOVE:
		regs.Set(inst.Reg0, b)
	case OP_LD:
		var value uint16
		value, err = cpu.memory.Get(b)
		if err != nil {
			return
		}
		regs.Set(inst.Reg0, value)
	case OP_SAV:
		err = cpu.memory.Set(a, b)
	case OP_ADD:
		sum := uint32(a) + uint32(b)
		regs.Set(inst.Reg0, uint16(sum))
		regs.SetFlag(FLAG_OVERFLOW, sum > 0xffff)
	case OP_SUB:
		regs.Set(inst.Reg0, a-b)
		regs.SetFlag(FLAG_OVERFLOW, a < b)
	case OP_MUL:
		product := uint32(a) * uint32(b)
		regs.Set(inst.Reg0, uint16(product))
		regs.SetFlag(FLAG_OVERFLOW, product > 0xffff)
	case OP_DIV:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		regs.Set(inst.Reg0, a/b)
		regs.SetFlag(FLAG_OVERFLOW, false)
	case OP_CMP_EQ:
		regs.SetFlag(FLAG_COMPARISON, a == b)
	case OP_CMP_NE:
		regs.SetFlag(FLAG_COMPARISON, a != b)
	case OP_CMP_GT:
		regs.SetFlag(FLAG_COMPARISON, a > b)
	case OP_CMP_LT:
		regs.SetFlag(FLAG_COMPARISON, a < b)
	case OP_CMP_XOR:
		// Set when both operands have the same truthiness.
		regs.SetFlag(FLAG_COMPARISON, (a != 0) == (b != 0))
	case OP_CMP_NOT:
		regs.SetFlag(FLAG_COMPARISON, a == 0)
	case OP_JMP:
		var taken bool
		taken, err = cpu.condition(inst.Cond)
		if err != nil {
			return
		}
		if taken {
			// Step adds the 1 back.
			regs.Pc = a - 1
		}
	case OP_BSL:
		regs.Set(inst.Reg0, a<<(b&0xf))
		regs.SetFlag(FLAG_OVERFLOW, b >= 16)
	case OP_BSR:
		regs.Set(inst.Reg0, a>>(b&0xf))
		regs.SetFlag(FLAG_OVERFLOW, b >= 16)
	case OP_BNOT:
		regs.Set(inst.Reg0, ^a)
	case OP_BXOR:
		regs.Set(inst.Reg0, a^b)
	case OP_BAND:
		regs.Set(inst.Reg0, a&b)
	case OP_BOR:
		regs.Set(inst.Reg0, a|b)
	case OP_BNOR:
		regs.Set(inst.Reg0, ^(a | b))
	case OP_LD_REL:
		var value uint16
		value, err = cpu.memory.Get(cpu.relative(inst.Offset))
		if err != nil {
			return
		}
		regs.General[0] = value
	case OP_SAV_REL:
		err = cpu.memory.Set(cpu.relative(inst.Offset), regs.General[0])
	case OP_JREL:
		var taken bool
		taken, err = cpu.condition(inst.Cond)
		if err != nil {
			return
		}
		if taken {
			// Lands one past the offset once Step advances.
			regs.Pc = cpu.relative(inst.Offset)
		}
	default:
		err = ErrUnreachable(f("opcode %v has no execution", inst.Op))
	}

	return
}
