// Package trace provides an optional, read-only instruction-execution
// logger for the LC-3 interpreter. A Hook is consulted by the machine
// at the same points a debugger would be, but it has no ability to
// alter machine state, set breakpoints, or pause the run loop — those
// are debugging facilities this interpreter intentionally omits.
package trace

import (
	"log"

	"github.com/arnegrin/lc3vm/internal/disasm"
)

// Hook observes machine execution. Implementations must not block or
// mutate the machine; they exist purely to surface what the machine is
// doing.
type Hook interface {
	// Step is called once per fetched instruction, after the program
	// counter has already been post-incremented (so pc is the address
	// the instruction was fetched from, not the next one).
	Step(pc uint16, instr uint16)

	// MemRead is called whenever the machine services a memory read,
	// after any memory-mapped side effects (such as a keyboard poll at
	// KBSR) have already been applied.
	MemRead(addr uint16, value uint16)

	// MemWrite is called whenever the machine services a memory write.
	MemWrite(addr uint16, value uint16)
}

// Logger is a Hook that renders each event to a *log.Logger using
// internal/disasm for the instruction mnemonic. From is the first
// program-counter address at which Step begins logging; earlier
// addresses are observed but not printed, which keeps a trace of a
// large program readable when only a specific region is of interest.
// A zero value logs from the first instruction.
type Logger struct {
	Out  *log.Logger
	From uint16

	started bool
}

// NewLogger returns a Logger writing to out, beginning at address from.
func NewLogger(out *log.Logger, from uint16) *Logger {
	return &Logger{Out: out, From: from}
}

func (l *Logger) Step(pc uint16, instr uint16) {
	if !l.started {
		if pc < l.From {
			return
		}
		l.started = true
	}

	l.Out.Printf("%#04x  %04x  %s", pc, instr, disasm.Decode(instr))
}

func (l *Logger) MemRead(addr uint16, value uint16) {
	if !l.started {
		return
	}
	if addr == 0xFE00 || addr == 0xFE02 {
		l.Out.Printf("        read  %#04x -> %#04x (keyboard)", addr, value)
	}
}

func (l *Logger) MemWrite(addr uint16, value uint16) {
	if !l.started {
		return
	}
	l.Out.Printf("        write %#04x <- %#04x", addr, value)
}
