// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	_ "embed"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/vcpu16/emulator"
	"github.com/ezrec/vcpu16/internal"
	"github.com/ezrec/vcpu16/machine"
	"github.com/ezrec/vcpu16/translate"
)

//go:embed sum.star
var sumScript string

// flagSettings maps flags onto the machine script settings they override.
var flagSettings = map[string]string{
	"n": "steps",
	"M": "memory_size",
	"s": "stack_size",
	"o": "origin",
	"e": "entry",
}

func main() {
	var script string
	var image string
	var steps int
	var memSize uint
	var stackSize uint
	var origin uint
	var entry uint
	var verbose bool
	var dump bool
	var defines bool
	var lang string

	flag.StringVar(&script, "m", "", ".star machine description to run")
	flag.StringVar(&image, "i", "", "Little-endian binary image to load")
	flag.IntVar(&steps, "n", 0, "Instruction budget; 0 runs until halted (overrides the script)")
	flag.UintVar(&memSize, "M", emulator.MEMORY_SIZE, "Main memory size, in words (overrides the script)")
	flag.UintVar(&stackSize, "s", emulator.STACK_SIZE, "Stack size, in words (overrides the script)")
	flag.UintVar(&origin, "o", 0, "Load address of the program (overrides the script)")
	flag.UintVar(&entry, "e", 0, "Initial program counter (overrides the script)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "d", false, "Dump main memory when done")
	flag.BoolVar(&defines, "D", false, "List the machine script defines, and exit")
	flag.StringVar(&lang, "lang", "", "Message language (default from the environment)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	for _, value := range []uint{memSize, stackSize, origin, entry} {
		if value > 0xffff {
			log.Fatalf("%v: %v", os.Args[0], translate.From("0x%x is not a 16-bit word", value))
		}
	}

	base := machine.Machine{
		Name:   image,
		Memory: uint16(memSize),
		Stack:  uint16(stackSize),
		Pc:     uint16(entry),
		Origin: uint16(origin),
		Steps:  steps,
	}

	emu := emulator.NewEmulator(base.Memory, base.Stack)

	if defines {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			translate.Fprintf(os.Stdout, "%v = %v\n", key, value)
		}
		return
	}

	mach := &base
	switch {
	case len(image) != 0:
		// Program comes from the image.
	case len(script) != 0:
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		defer inf.Close()

		mach, err = machine.Parse(script, inf, base, emu.Defines())
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	default:
		var err error
		mach, err = machine.Parse("sum.star", strings.NewReader(sumScript), base, emu.Defines())
		if err != nil {
			log.Fatalf("sum.star: %v", err)
		}
	}

	// Flags given on the command line win over the script.
	var overrides []string
	flag.Visit(func(fl *flag.Flag) {
		if name, ok := flagSettings[fl.Name]; ok {
			overrides = append(overrides, name)
		}
	})
	mach.Override(base, overrides...)

	if mach.Memory != base.Memory || mach.Stack != base.Stack {
		emu = emulator.NewEmulator(mach.Memory, mach.Stack)
	}
	emu.Verbose = verbose

	if len(image) != 0 {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		_, err = emu.LoadImage(mach.Origin, inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	} else {
		err := emu.Load(mach.Origin, mach.Program)
		if err != nil {
			log.Fatalf("%v: %v", mach.Name, err)
		}
	}

	emu.Reset(mach.Pc)
	_, err := emu.Run(mach.Steps)
	if err != nil {
		log.Fatalf("%v: %v", mach.Name, err)
	}

	translate.Fprintf(os.Stdout, "%v\n", emu.Cpu.String())
	if emu.Halt != nil {
		translate.Fprintf(os.Stdout, "halted: %v\n", emu.Halt)
	}
	translate.Fprintf(os.Stdout, "ticks: %v\n", emu.Ticks())
	translate.Fprintf(os.Stdout, "digest: %016x\n", emu.Digest())

	if dump {
		err = emu.Dump(os.Stdout, 0, emu.Memory.Len())
		if err != nil {
			log.Fatalf("%v: %v", mach.Name, err)
		}
	}
}
