package disasm_test

import (
	"strings"
	"testing"

	"github.com/arnegrin/lc3vm/internal/disasm"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		instr uint16
		want  string
	}{
		{"ADD immediate #3", 0x1023, "ADD R0, R0, #3"},
		{"ADD immediate #-1", 0x127F, "ADD R1, R1, #-1"},
		{"NOT", 0x94BF, "NOT R2, R2"},
		{"LDI", 0xA001, "LDI R0, #1"},
		{"BRz", 0x0402, "BRz #2"},
		{"HALT trap", 0xF025, "TRAP x25 (HALT)"},
		{"PUTS trap", 0xF022, "TRAP x22 (PUTS)"},
		{"RET", 0xC1C0, "RET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have := disasm.Decode(tt.instr)
			if have != tt.want {
				t.Errorf("Decode(%#04x) = %q, want %q", tt.instr, have, tt.want)
			}
		})
	}
}

func TestMnemonicUnknownOpcode(t *testing.T) {
	if have := disasm.Mnemonic(disasm.Opcode(0xFF)); have != "???" {
		t.Errorf("Mnemonic(0xFF) = %q, want ???", have)
	}
}

func TestDecodeReservedAndRTI(t *testing.T) {
	if have := disasm.Decode(0x8000); have != "RTI" {
		t.Errorf("Decode(RTI) = %q", have)
	}
	if have := disasm.Decode(0xD000); have != "RES" {
		t.Errorf("Decode(RES) = %q", have)
	}
}

func TestDecodeTrapUnknownVector(t *testing.T) {
	have := disasm.Decode(0xF0AB)
	if !strings.HasPrefix(have, "TRAP xAB") {
		t.Errorf("Decode(unknown trap) = %q", have)
	}
}
