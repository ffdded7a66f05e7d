// Package cpu implements the instruction codec and execution engine of the
// vcpu16 processor.
//
// The CPU consists of thirteen 16-bit general-purpose registers (r0-r12), a
// flags register holding the OVERFLOW and COMPARISON bits, a program counter
// (pc), a stack pointer (sp) into a private stack memory, and a reference to
// main memory. Every instruction is a single word: a 5-bit opcode, followed
// by either two 4-bit register fields or an 8-bit immediate.
package cpu
