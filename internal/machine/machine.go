package machine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arnegrin/lc3vm/internal/disasm"
	"github.com/arnegrin/lc3vm/internal/encoding"
)

// IllegalInstructionError is returned by Step when the fetched
// instruction decodes to RTI or RES, both reserved in this
// implementation. LC-3 has no privileged-mode return path, so there is
// no recovery; the caller should treat this as fatal.
type IllegalInstructionError struct {
	Opcode uint16
	PC     uint16
}

func (err *IllegalInstructionError) Error() string {
	return fmt.Sprintf(
		"illegal instruction %s at %#04x", disasm.Decode(err.Opcode), err.PC,
	)
}

// LoadError is returned by LoadImage when the object-file stream is
// too short to contain even an origin, or the underlying reader fails.
type LoadError struct {
	Err error
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("loading image: %s", err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

// Reset clears registers and memory and sets PC to DefaultOrigin. It
// leaves Devices and Tracer untouched.
func (mc *Machine) Reset() {
	for i := range mc.State.Registers {
		mc.State.Registers[i] = 0
	}

	for i := range mc.State.Memory {
		mc.State.Memory[i] = 0
	}

	mc.State.PC = DefaultOrigin
	mc.State.COND = 0
	mc.running = true
}

// LoadImage parses a big-endian object file from r: the first two
// bytes are the origin address, and each subsequent pair of bytes is a
// machine word placed at origin, origin+1, and so on until the stream
// is exhausted. A trailing odd byte is ignored. LoadImage resets the
// machine first, then sets PC to the loaded origin, and leaves
// running true so the caller's fetch loop can begin immediately.
func (mc *Machine) LoadImage(r io.Reader) (uint16, error) {
	mc.Reset()

	var originBytes [2]byte
	if _, err := io.ReadFull(r, originBytes[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, &LoadError{Err: err}
	}

	origin := binary.BigEndian.Uint16(originBytes[:])
	mc.State.PC = origin

	addr := origin
	scratch := make([]byte, 2)

	for {
		n, err := io.ReadFull(r, scratch)
		if err == io.EOF {
			break
		} else if err == io.ErrUnexpectedEOF {
			// Trailing odd byte: ignore it, per the object-file spec.
			break
		} else if err != nil {
			return origin, &LoadError{Err: err}
		} else if n != 2 {
			break
		}

		mc.State.Memory[addr] = binary.BigEndian.Uint16(scratch)
		addr++
	}

	return origin, nil
}

func (mc *Machine) read(addr uint16) uint16 {
	if addr == DevKBSR {
		var available bool
		var key byte

		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			var err error
			key, available, err = mc.Devices.Keyboard.TryReadByte()
			if err != nil && !errors.Is(err, io.EOF) {
				available = false
			}
		}

		if available {
			mc.State.Memory[DevKBSR] = 1 << 15
			mc.State.Memory[DevKBDR] = uint16(key)
		} else {
			mc.State.Memory[DevKBSR] = 0
		}
	}

	value := mc.State.Memory[addr]

	if mc.Tracer != nil {
		mc.Tracer.MemRead(addr, value)
	}

	return value
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value

	if mc.Tracer != nil {
		mc.Tracer.MemWrite(addr, value)
	}
}

func (mc *Machine) setFlags(dr uint16) {
	value := mc.State.Registers[dr]

	switch {
	case value == 0:
		mc.State.COND = FlagZRO
	case value>>15 == 1:
		mc.State.COND = FlagNEG
	default:
		mc.State.COND = FlagPOS
	}
}

// Step fetches and executes exactly one instruction. It returns a
// non-nil *IllegalInstructionError for RTI/RES, and a TRAP returns any
// error the console or keyboard reports (a keyboard EOF is not an
// error, see readByteBlocking); all other opcodes return nil, with
// HALT instead clearing Running().
func (mc *Machine) Step() error {
	pc := mc.State.PC
	instr := mc.read(pc)
	mc.State.PC++

	if mc.Tracer != nil {
		mc.Tracer.Step(pc, instr)
	}

	opcode := instr >> 12

	switch opcode {
	case opADD:
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7

		if (instr>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instr&0x1F, 5)
			mc.State.Registers[dr] = mc.State.Registers[sr1] + imm5
		} else {
			sr2 := instr & 0x7
			mc.State.Registers[dr] = mc.State.Registers[sr1] + mc.State.Registers[sr2]
		}

		mc.setFlags(dr)

	case opAND:
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7

		if (instr>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instr&0x1F, 5)
			mc.State.Registers[dr] = mc.State.Registers[sr1] & imm5
		} else {
			sr2 := instr & 0x7
			mc.State.Registers[dr] = mc.State.Registers[sr1] & mc.State.Registers[sr2]
		}

		mc.setFlags(dr)

	case opBR:
		flags := (instr >> 9) & 0x7

		if flags&mc.State.COND != 0 {
			mc.State.PC += encoding.SignExtend(instr&0x1FF, 9)
		}

	case opJMP:
		base := (instr >> 6) & 0x7
		mc.State.PC = mc.State.Registers[base]

	case opJSR:
		mc.State.Registers[7] = mc.State.PC

		if (instr>>11)&0x1 == 1 {
			mc.State.PC += encoding.SignExtend(instr&0x7FF, 11)
		} else {
			base := (instr >> 6) & 0x7
			mc.State.PC = mc.State.Registers[base]
		}

	case opLD:
		dr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)
		mc.State.Registers[dr] = mc.read(addr)
		mc.setFlags(dr)

	case opLDI:
		dr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)
		mc.State.Registers[dr] = mc.read(mc.read(addr))
		mc.setFlags(dr)

	case opLDR:
		dr := (instr >> 9) & 0x7
		base := (instr >> 6) & 0x7
		addr := mc.State.Registers[base] + encoding.SignExtend(instr&0x3F, 6)
		mc.State.Registers[dr] = mc.read(addr)
		mc.setFlags(dr)

	case opLEA:
		dr := (instr >> 9) & 0x7
		mc.State.Registers[dr] = mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)
		mc.setFlags(dr)

	case opNOT:
		dr := (instr >> 9) & 0x7
		sr := (instr >> 6) & 0x7
		mc.State.Registers[dr] = ^mc.State.Registers[sr]
		mc.setFlags(dr)

	case opST:
		sr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)
		mc.write(addr, mc.State.Registers[sr])

	case opSTI:
		sr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)
		mc.write(mc.read(addr), mc.State.Registers[sr])

	case opSTR:
		sr := (instr >> 9) & 0x7
		base := (instr >> 6) & 0x7
		addr := mc.State.Registers[base] + encoding.SignExtend(instr&0x3F, 6)
		mc.write(addr, mc.State.Registers[sr])

	case opTRAP:
		return mc.trap(instr & 0xFF)

	case opRTI, opRES:
		return &IllegalInstructionError{Opcode: instr, PC: pc}
	}

	return nil
}
