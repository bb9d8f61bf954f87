package machine

import (
	"errors"
	"io"
)

// trap dispatches one of the six LC-3 service calls named by vector.
// Per this implementation's resolution of the spec's R7 Open Question,
// traps never touch R7 or PC beyond TRAP's own fetch-side
// post-increment; control returns to the instruction after TRAP
// implicitly. Traps also never touch COND: only the flag-setting
// opcode set (ADD, AND, NOT, LD, LDI, LDR, LEA) does.
func (mc *Machine) trap(vector uint16) error {
	switch vector {
	case TrapGETC:
		b, err := mc.readByteBlocking()
		if err != nil {
			return err
		}
		mc.State.Registers[0] = uint16(b)

	case TrapOUT:
		return mc.writeToDisplay([]byte{byte(mc.State.Registers[0] & 0xFF)})

	case TrapPUTS:
		addr := mc.State.Registers[0]
		var out []byte

		for {
			word := mc.read(addr)
			if word == 0 {
				break
			}
			out = append(out, byte(word&0xFF))
			addr++
		}

		return mc.writeToDisplay(out)

	case TrapIN:
		if err := mc.writeToDisplay([]byte("Enter a character: ")); err != nil {
			return err
		}

		b, err := mc.readByteBlocking()
		if err != nil {
			return err
		}

		mc.State.Registers[0] = uint16(b)

		return mc.writeToDisplay([]byte{b})

	case TrapPUTSP:
		addr := mc.State.Registers[0]
		var out []byte

		for {
			word := mc.read(addr)
			if word == 0 {
				break
			}

			out = append(out, byte(word&0xFF))
			if hi := byte(word >> 8); hi != 0 {
				out = append(out, hi)
			}
			addr++
		}

		return mc.writeToDisplay(out)

	case TrapHALT:
		if err := mc.writeToDisplay([]byte("\n\n--- halting the LC-3 ---\n\n")); err != nil {
			return err
		}
		mc.running = false
	}

	return nil
}

// readByteBlocking blocks until one byte is available from the
// keyboard source. Per the spec's recommended host-I/O failure
// behavior, an EOF from the underlying source is treated as if a NUL
// byte were read rather than propagated as a fatal error.
func (mc *Machine) readByteBlocking() (byte, error) {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return 0, nil
	}

	b, err := mc.Devices.Keyboard.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}

	return b, nil
}

func (mc *Machine) writeToDisplay(b []byte) error {
	if mc.Devices == nil || mc.Devices.Display == nil || len(b) == 0 {
		return nil
	}

	return mc.Devices.Display.WriteBytes(b)
}
