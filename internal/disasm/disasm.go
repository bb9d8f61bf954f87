// Package disasm renders a raw LC-3 instruction word as a mnemonic
// string. It is read-only: there is no tokenizer, parser, or code
// generator here, only the enum-to-mnemonic direction a source-level
// assembler would also need.
package disasm

import (
	"fmt"

	"github.com/arnegrin/lc3vm/internal/encoding"
)

// Opcode names bits [15:12] of an instruction word.
type Opcode uint16

const (
	OpBR   Opcode = 0b0000
	OpADD  Opcode = 0b0001
	OpLD   Opcode = 0b0010
	OpST   Opcode = 0b0011
	OpJSR  Opcode = 0b0100
	OpAND  Opcode = 0b0101
	OpLDR  Opcode = 0b0110
	OpSTR  Opcode = 0b0111
	OpRTI  Opcode = 0b1000
	OpNOT  Opcode = 0b1001
	OpLDI  Opcode = 0b1010
	OpSTI  Opcode = 0b1011
	OpJMP  Opcode = 0b1100
	OpRES  Opcode = 0b1101
	OpLEA  Opcode = 0b1110
	OpTRAP Opcode = 0b1111
)

var mnemonics = map[Opcode]string{
	OpBR:   "BR",
	OpADD:  "ADD",
	OpLD:   "LD",
	OpST:   "ST",
	OpJSR:  "JSR",
	OpAND:  "AND",
	OpLDR:  "LDR",
	OpSTR:  "STR",
	OpRTI:  "RTI",
	OpNOT:  "NOT",
	OpLDI:  "LDI",
	OpSTI:  "STI",
	OpJMP:  "JMP",
	OpRES:  "RES",
	OpLEA:  "LEA",
	OpTRAP: "TRAP",
}

var trapNames = map[uint16]string{
	0x20: "GETC",
	0x21: "OUT",
	0x22: "PUTS",
	0x23: "IN",
	0x24: "PUTSP",
	0x25: "HALT",
}

// Mnemonic returns the three-to-four letter opcode name, or "???" for
// an opcode value outside the 4-bit range (never reachable in practice
// since the caller always derives it by masking the top four bits).
func Mnemonic(op Opcode) string {
	if name, ok := mnemonics[op]; ok {
		return name
	}
	return "???"
}

// Decode renders instr as a human-readable mnemonic line, used by the
// tracer and by illegal-instruction error messages. It does not
// attempt to resolve PC-relative offsets to absolute addresses; that
// requires the PC at the time of fetch, which the caller may append.
func Decode(instr uint16) string {
	op := Opcode(instr >> 12)

	switch op {
	case OpADD, OpAND:
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7
		if (instr>>5)&0x1 == 1 {
			imm5 := instr & 0x1F
			return fmt.Sprintf("%s R%d, R%d, #%d", Mnemonic(op), dr, sr1, int8(imm5<<3)>>3)
		}
		sr2 := instr & 0x7
		return fmt.Sprintf("%s R%d, R%d, R%d", Mnemonic(op), dr, sr1, sr2)

	case OpNOT:
		dr := (instr >> 9) & 0x7
		sr := (instr >> 6) & 0x7
		return fmt.Sprintf("NOT R%d, R%d", dr, sr)

	case OpBR:
		n, z, p := (instr>>11)&1, (instr>>10)&1, (instr>>9)&1
		cond := ""
		if n == 1 {
			cond += "n"
		}
		if z == 1 {
			cond += "z"
		}
		if p == 1 {
			cond += "p"
		}
		return fmt.Sprintf("BR%s #%d", cond, pcOffset9(instr))

	case OpLD, OpLDI, OpLEA, OpST, OpSTI:
		dr := (instr >> 9) & 0x7
		return fmt.Sprintf("%s R%d, #%d", Mnemonic(op), dr, pcOffset9(instr))

	case OpLDR, OpSTR:
		dr := (instr >> 9) & 0x7
		base := (instr >> 6) & 0x7
		offset6 := instr & 0x3F
		return fmt.Sprintf("%s R%d, R%d, #%d", Mnemonic(op), dr, base, int8(offset6<<2)>>2)

	case OpJMP:
		base := (instr >> 6) & 0x7
		if base == 7 {
			return "RET"
		}
		return fmt.Sprintf("JMP R%d", base)

	case OpJSR:
		if (instr>>11)&0x1 == 1 {
			return fmt.Sprintf("JSR #%d", pcOffset11(instr))
		}
		base := (instr >> 6) & 0x7
		return fmt.Sprintf("JSRR R%d", base)

	case OpTRAP:
		vector := encoding.ZeroExtend(instr, 8)
		if name, ok := trapNames[vector]; ok {
			return fmt.Sprintf("TRAP x%02X (%s)", vector, name)
		}
		return fmt.Sprintf("TRAP x%02X", vector)

	case OpRTI:
		return "RTI"

	case OpRES:
		return "RES"

	default:
		return fmt.Sprintf("??? x%04X", instr)
	}
}

func pcOffset9(instr uint16) int16 {
	v := instr & 0x1FF
	return int16(v<<7) >> 7
}

func pcOffset11(instr uint16) int16 {
	v := instr & 0x7FF
	return int16(v<<5) >> 5
}
