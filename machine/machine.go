// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine loads Starlark machine descriptions.
//
// A machine description is a Starlark script that assigns any of the
// globals `memory_size`, `stack_size`, `entry`, `origin`, `steps` and
// `program`.
// Scripts build program words with one encoder builtin per opcode:
//
//	program = [
//	    jrel(3, ALWAYS),
//	    0, 34, 53,
//	    ldr(-2),
//	    move(r1, r0),
//	    ldr(-3),
//	    add(r0, r1),
//	    savr(-7),
//	]
package machine

import (
	"io"
	"iter"
	"log"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vcpu16/cpu"
)

// Machine is a description of one emulator run.
type Machine struct {
	Name    string   // Name of the description, for messages.
	Memory  uint16   // Main memory size, in words.
	Stack   uint16   // Stack size, in words.
	Pc      uint16   // Initial program counter.
	Origin  uint16   // Load address of the program.
	Steps   int      // Instruction budget; zero or less is unbounded.
	Program []uint16 // Program words.
}

// Override copies the named settings from over into mach. Names are the
// script globals memory_size, stack_size, entry, origin and steps; other
// names are ignored.
func (mach *Machine) Override(over Machine, names ...string) {
	for _, name := range names {
		switch name {
		case "memory_size":
			mach.Memory = over.Memory
		case "stack_size":
			mach.Stack = over.Stack
		case "entry":
			mach.Pc = over.Pc
		case "origin":
			mach.Origin = over.Origin
		case "steps":
			mach.Steps = over.Steps
		}
	}
}

// BuiltinName returns the script name of the encoder for op.
func BuiltinName(op cpu.Opcode) string {
	switch op {
	case cpu.OP_INT:
		return "interrupt"
	case cpu.OP_CMP_EQ, cpu.OP_CMP_NE, cpu.OP_CMP_GT, cpu.OP_CMP_LT, cpu.OP_CMP_XOR, cpu.OP_CMP_NOT:
		return "cmp_" + op.String()
	}

	return op.String()
}

// operand unpacks an integer operand within [min, max].
// Range is checked after unpacking so the typed error reaches the caller.
type operand struct {
	name     string
	min, max int
	value    int
}

func (op *operand) Unpack(v starlark.Value) (err error) {
	op.value, err = starlark.AsInt32(v)
	return
}

func register(name string) *operand {
	return &operand{name: name, max: cpu.REG_COUNT - 1}
}

// check returns the first operand outside of its range.
func check(builtin string, ops ...*operand) error {
	for _, op := range ops {
		if op.value < op.min || op.value > op.max {
			return ErrOperandRange{Builtin: builtin, Operand: op.name, Value: op.value}
		}
	}
	return nil
}

// encoder creates the builtin that encodes op.
func encoder(op cpu.Opcode) *starlark.Builtin {
	name := BuiltinName(op)

	fn := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var inst cpu.Instruction
		var err error
		reg0 := register("reg0")
		reg1 := register("reg1")
		offset := &operand{name: "offset", min: -128, max: 127}

		switch op.Shape() {
		case cpu.SHAPE_NONE:
			err = starlark.UnpackArgs(name, args, kwargs)
			inst = cpu.MakeOp(op)
		case cpu.SHAPE_REG:
			err = starlark.UnpackArgs(name, args, kwargs, "reg", reg0)
			if err == nil {
				err = check(name, reg0)
			}
			inst = cpu.MakeReg(op, uint8(reg0.value))
		case cpu.SHAPE_REG_REG:
			err = starlark.UnpackArgs(name, args, kwargs, "reg0", reg0, "reg1", reg1)
			if err == nil {
				err = check(name, reg0, reg1)
			}
			inst = cpu.MakeRegReg(op, uint8(reg0.value), uint8(reg1.value))
		case cpu.SHAPE_REG_COND:
			cond := &operand{name: "cond", max: cpu.REG_MASK}
			err = starlark.UnpackArgs(name, args, kwargs, "reg", reg0, "cond?", cond)
			if err == nil {
				err = check(name, reg0, cond)
			}
			inst = cpu.MakeJump(uint8(reg0.value), cpu.CodeCond(cond.value))
		case cpu.SHAPE_IMM:
			imm := &operand{name: "imm", max: cpu.ARG_MASK}
			err = starlark.UnpackArgs(name, args, kwargs, "imm", imm)
			if err == nil {
				err = check(name, imm)
			}
			inst = cpu.MakeInterrupt(uint8(imm.value))
		case cpu.SHAPE_REL:
			err = starlark.UnpackArgs(name, args, kwargs, "offset", offset)
			if err == nil {
				err = check(name, offset)
			}
			inst = cpu.MakeRelative(op, int8(offset.value))
		case cpu.SHAPE_REL_COND:
			cond := &operand{name: "cond", max: cpu.JUMP_COND_MASK}
			err = starlark.UnpackArgs(name, args, kwargs, "offset", offset, "cond?", cond)
			if err == nil {
				err = check(name, offset, cond)
			}
			inst = cpu.MakeJumpRelative(int8(offset.value), cpu.CodeCond(cond.value))
		}

		if err != nil {
			return nil, err
		}

		return starlark.MakeInt(int(inst.Encode())), nil
	}

	return starlark.NewBuiltin(name, fn)
}

// Predeclared returns the names visible to machine scripts: the encoder
// builtins, register and condition names, and the integer defines.
func Predeclared(defines iter.Seq2[string, string]) (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range defines {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer defines.
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	for index := range uint8(cpu.REG_COUNT) {
		pred[cpu.RegisterName(index)] = starlark.MakeInt(int(index))
	}

	pred["ALWAYS"] = starlark.MakeInt(int(cpu.COND_ALWAYS))
	pred["IF_TRUE"] = starlark.MakeInt(int(cpu.COND_IF_TRUE))
	pred["IF_FALSE"] = starlark.MakeInt(int(cpu.COND_IF_FALSE))
	pred["IF_OVERFLOW"] = starlark.MakeInt(int(cpu.COND_IF_OVERFLOW))

	for _, op := range cpu.Opcodes() {
		pred[BuiltinName(op)] = encoder(op)
	}

	return
}

// word converts a script value to a word.
func word(v starlark.Value) (value uint16, err error) {
	i, ok := v.(starlark.Int)
	if !ok {
		err = ErrNotInteger(v.Type())
		return
	}
	i64, ok := i.Int64()
	if !ok || i64 < 0 || i64 > 0xffff {
		err = ErrWordRange(i.String())
		return
	}
	value = uint16(i64)
	return
}

// Parse evaluates the machine description in src. Settings the script
// does not assign keep their value from base.
func Parse(name string, src io.Reader, base Machine, defines iter.Seq2[string, string]) (mach *Machine, err error) {
	thread := &starlark.Thread{
		Name: name,
		Print: func(thread *starlark.Thread, msg string) {
			log.Printf("%v: %v", thread.Name, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, name, src, Predeclared(defines))
	if err != nil {
		return
	}

	mach = &base
	mach.Name = name

	fields := []struct {
		name  string
		value *uint16
	}{
		{"memory_size", &mach.Memory},
		{"stack_size", &mach.Stack},
		{"entry", &mach.Pc},
		{"origin", &mach.Origin},
	}
	for _, field := range fields {
		v, ok := globals[field.name]
		if !ok {
			continue
		}
		*field.value, err = word(v)
		if err != nil {
			err = &ErrMachineField{Field: field.name, Err: err}
			mach = nil
			return
		}
	}

	if v, ok := globals["steps"]; ok {
		mach.Steps, err = starlark.AsInt32(v)
		if err != nil {
			err = &ErrMachineField{Field: "steps", Err: err}
			mach = nil
			return
		}
	}

	if v, ok := globals["program"]; ok {
		mach.Program, err = program(v)
		if err != nil {
			err = &ErrMachineField{Field: "program", Err: err}
			mach = nil
			return
		}
	}

	return
}

// program converts a script sequence of words.
func program(v starlark.Value) (words []uint16, err error) {
	seq, ok := v.(starlark.Iterable)
	if !ok {
		err = ErrNotSequence(v.Type())
		return
	}

	it := seq.Iterate()
	defer it.Done()

	var x starlark.Value
	for it.Next(&x) {
		var value uint16
		value, err = word(x)
		if err != nil {
			return
		}
		words = append(words, value)
	}

	return
}
