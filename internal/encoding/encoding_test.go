package encoding_test

import (
	"testing"

	"github.com/arnegrin/lc3vm/internal/encoding"
)

func TestSignExtend(t *testing.T) {
	tests := []struct {
		name     string
		value    uint16
		bitcount uint16
		want     uint16
	}{
		{"5-bit positive", 0x0F, 5, 0x000F},
		{"5-bit negative", 0x1F, 5, 0xFFFF},
		{"5-bit -1 (imm5 #-1)", 0x1F, 5, 0xFFFF},
		{"6-bit negative", 0x3F, 6, 0xFFFF},
		{"9-bit positive", 0x0FF, 9, 0x00FF},
		{"9-bit negative", 0x1FF, 9, 0xFFFF},
		{"11-bit positive", 0x3FF, 11, 0x03FF},
		{"11-bit negative", 0x7FF, 11, 0xFFFF},
		{"zero is never negative", 0, 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have := encoding.SignExtend(tt.value, tt.bitcount)
			if have != tt.want {
				t.Errorf("SignExtend(%#x, %d) = %#04x, want %#04x", tt.value, tt.bitcount, have, tt.want)
			}
		})
	}
}

// P1 (sign-extend round-trip): for any N and any 16-bit value whose bits
// [N..15] all equal its bit [N-1], SignExtend(low_N_bits(v), N) == v.
func TestSignExtendRoundTrip(t *testing.T) {
	for _, n := range []uint16{5, 6, 9, 11} {
		mask := uint16(1)<<n - 1
		signBit := uint16(1) << (n - 1)

		for _, v := range []uint16{0, signBit, mask, 0xFFFF, 0x8000} {
			// Construct a value whose upper bits already agree with bit N-1,
			// as the property requires.
			low := v & mask
			var extended uint16
			if low&signBit != 0 {
				extended = low | ^mask
			} else {
				extended = low
			}

			have := encoding.SignExtend(low, n)
			if have != extended {
				t.Errorf("SignExtend round-trip failed for N=%d v=%#04x: got %#04x want %#04x", n, v, have, extended)
			}
		}
	}
}

func TestZeroExtend(t *testing.T) {
	if have := encoding.ZeroExtend(0xFF, 8); have != 0xFF {
		t.Errorf("ZeroExtend(0xFF, 8) = %#x, want 0xFF", have)
	}
	if have := encoding.ZeroExtend(0x1FF, 8); have != 0xFF {
		t.Errorf("ZeroExtend(0x1FF, 8) = %#x, want 0xFF", have)
	}
}

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0x3000", 0x3000, false},
		{"x3000", 0x3000, false},
		{"0xFF", 0xFF, false},
		{"xFF", 0xFF, false},
		{"bogus", 0, true},
		{"3000", 0, true},
	}

	for _, tt := range tests {
		have, err := encoding.DecodeHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("DecodeHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && have != tt.want {
			t.Errorf("DecodeHex(%q) = %#x, want %#x", tt.in, have, tt.want)
		}
	}
}
