package machine

// Condition flags. Exactly one is set in COND after any flag-setting
// instruction.
const (
	FlagPOS uint16 = 1 << 0
	FlagZRO uint16 = 1 << 1
	FlagNEG uint16 = 1 << 2
)

// Trap vectors consumed by the TRAP opcode's low 8 bits.
const (
	TrapGETC  uint16 = 0x20
	TrapOUT   uint16 = 0x21
	TrapPUTS  uint16 = 0x22
	TrapIN    uint16 = 0x23
	TrapPUTSP uint16 = 0x24
	TrapHALT  uint16 = 0x25
)

const (
	// DefaultOrigin is where PC starts if the loader does not override it.
	DefaultOrigin uint16 = 0x3000

	// DevKBSR and DevKBDR are the memory-mapped keyboard status and
	// data registers.
	DevKBSR uint16 = 0xFE00
	DevKBDR uint16 = 0xFE02
)

// Opcodes occupy bits [15:12] of an instruction word.
const (
	opBR   uint16 = 0b0000
	opADD  uint16 = 0b0001
	opLD   uint16 = 0b0010
	opST   uint16 = 0b0011
	opJSR  uint16 = 0b0100
	opAND  uint16 = 0b0101
	opLDR  uint16 = 0b0110
	opSTR  uint16 = 0b0111
	opRTI  uint16 = 0b1000
	opNOT  uint16 = 0b1001
	opLDI  uint16 = 0b1010
	opSTI  uint16 = 0b1011
	opJMP  uint16 = 0b1100
	opRES  uint16 = 0b1101
	opLEA  uint16 = 0b1110
	opTRAP uint16 = 0b1111
)
