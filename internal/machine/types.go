package machine

// KeyboardSource is the non-blocking/blocking read half of the host
// I/O adapter contract. TryReadByte must not block: ok is false and
// err is nil when no byte is currently available. ReadByte blocks
// until a byte is available or the source is exhausted.
type KeyboardSource interface {
	TryReadByte() (b byte, ok bool, err error)
	ReadByte() (byte, error)
}

// ConsoleSink is the write half of the host I/O adapter contract: a
// synchronous, ordered append to the console.
type ConsoleSink interface {
	WriteBytes(b []byte) error
}

// DeviceHandler wires the host-provided keyboard and console into a
// Machine. Either field may be nil; a nil Keyboard reports no input
// ever available, a nil Display discards writes.
type DeviceHandler struct {
	Keyboard KeyboardSource
	Display  ConsoleSink
}

// Tracer observes instruction execution and memory-mapped I/O without
// the ability to alter either. See internal/trace.
type Tracer interface {
	Step(pc uint16, instr uint16)
	MemRead(addr uint16, value uint16)
	MemWrite(addr uint16, value uint16)
}

// MachineState is the complete mutable state of an LC-3 machine: the
// eight general-purpose registers, the program counter, the condition
// register, and the 65,536-word address space.
type MachineState struct {
	Registers [8]uint16
	PC        uint16
	COND      uint16
	Memory    [1 << 16]uint16
}

// Machine is an LC-3 interpreter: its state plus the host collaborators
// it is embedded with. The zero value is usable; Devices and Tracer may
// be left nil.
type Machine struct {
	State   MachineState
	Devices *DeviceHandler
	Tracer  Tracer

	running bool
}

// Running reports whether the fetch-decode-execute loop should keep
// iterating. It is true after Reset/LoadImage and false once a HALT
// trap has fired.
func (mc *Machine) Running() bool {
	return mc.running
}
