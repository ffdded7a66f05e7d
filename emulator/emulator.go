// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a vcpu16 processor over a shared main memory.
package emulator

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/cespare/xxhash"

	"github.com/ezrec/vcpu16/cpu"
	"github.com/ezrec/vcpu16/internal"
	"github.com/ezrec/vcpu16/memory"
)

const (
	MEMORY_SIZE = 0x1000 // Default main memory, in words.
	STACK_SIZE  = 0x100  // Default stack, in words.
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"STACK_SIZE":  fmt.Sprintf("0x%x", STACK_SIZE),
}

// Emulator state. CPU + main memory.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Shared // Main memory, shared with the CPU.

	Halt error // Fetch fault that halted the CPU, if any.
}

// NewEmulator creates a new emulator with memSize words of main memory
// and stackSize words of stack.
func NewEmulator(memSize, stackSize uint16) (emu *Emulator) {
	mem := memory.NewShared(memSize)

	emu = &Emulator{
		Cpu:    cpu.NewCpu(mem, 0, stackSize),
		Memory: mem,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load writes the program words into main memory at origin.
func (emu *Emulator) Load(origin uint16, program []uint16) (err error) {
	if emu.Verbose {
		log.Printf("emulator: load %d words at 0x%04x", len(program), origin)
	}

	return emu.Memory.SetRange(origin, program)
}

// LoadImage reads little-endian words from r into main memory at origin,
// and returns the number of words loaded.
func (emu *Emulator) LoadImage(origin uint16, r io.Reader) (count int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(data)%2 != 0 {
		err = ErrImageOdd
		return
	}

	words := make([]uint16, len(data)/2)
	for n := range words {
		words[n] = binary.LittleEndian.Uint16(data[n*2:])
	}

	err = emu.Load(origin, words)
	if err != nil {
		return
	}

	count = len(words)
	return
}

// Reset the CPU, and start execution at pc. Memory is left as loaded.
func (emu *Emulator) Reset(pc uint16) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(pc)
	emu.Halt = nil
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint16 {
	return emu.Cpu.Register.Pc
}

// Tick performs a single instruction.
//
// done is set when the instruction fetch faults; the fault is kept in
// Halt, and the program counter has wrapped to 0. Any other fault is returned as an *ErrRuntime,
// and the emulator may keep ticking.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Register.Pc
	word, _ := emu.Memory.Get(pc)

	err = emu.Cpu.Step()
	// Halted reports the fetch fault itself; the program counter alone
	// cannot tell a fault from a jump to PC_HALTED.
	if emu.Cpu.Halted() {
		if emu.Verbose {
			log.Printf("emulator: halted at 0x%04x: %v", pc, err)
		}
		emu.Halt = err
		err = nil
		done = true
		return
	}

	if err != nil {
		err = &ErrRuntime{Pc: pc, Word: word, Err: err}
	}

	return
}

// Run ticks until the CPU halts, a fault occurs, or limit instructions
// have executed. A limit of zero or less runs without bound.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	for limit <= 0 || steps < limit {
		var done bool
		done, err = emu.Tick()
		if done {
			return
		}
		steps++
		if err != nil {
			return
		}
	}

	return
}

// Digest returns a hash of the main memory contents.
func (emu *Emulator) Digest() uint64 {
	words := emu.Memory.Words()
	data := make([]byte, 0, len(words)*2)
	for _, word := range words {
		data = binary.LittleEndian.AppendUint16(data, word)
	}

	return xxhash.Sum64(data)
}

// Dump writes count words of main memory, starting at pos, eight to a line.
func (emu *Emulator) Dump(w io.Writer, pos uint16, count uint16) (err error) {
	words, err := emu.Memory.GetRange(pos, count)
	if err != nil {
		return
	}

	for n, word := range words {
		if n%8 == 0 {
			if n != 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%04x:", int(pos)+n)
		}
		fmt.Fprintf(w, " %04x", word)
	}
	if len(words) != 0 {
		fmt.Fprintln(w)
	}

	return
}
