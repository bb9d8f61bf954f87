//go:build linux

package main

import (
	"bufio"
	"os"

	"golang.org/x/sys/unix"
)

var termRestore unix.Termios

func enterRawTerm() {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		panic(err)
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	// VMIN=1 rather than the teacher's VMIN=0: ReadByte (GETC, IN) must
	// actually block for a keystroke, not just poll. TryReadByte gets
	// its non-blocking behavior from a select() check before the read,
	// not from the termios settings.
	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), unix.TCSETS, &termstate,
	); err != nil {
		panic(err)
	}
}

func exitRawTerm() {
	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), unix.TCSETS, &termRestore,
	); err != nil {
		panic(err)
	}
}

// terminalKeyboard adapts stdin, once in raw mode, to machine.KeyboardSource.
type terminalKeyboard struct {
	fd int
	r  *bufio.Reader
}

func newTerminalKeyboard() *terminalKeyboard {
	return &terminalKeyboard{fd: int(os.Stdin.Fd()), r: bufio.NewReader(os.Stdin)}
}

// TryReadByte reports whether a keystroke is already waiting, and if so
// consumes and returns it. It never blocks.
func (k *terminalKeyboard) TryReadByte() (byte, bool, error) {
	if k.r.Buffered() == 0 {
		ready, err := selectReady(k.fd)
		if err != nil || !ready {
			return 0, false, err
		}
	}

	b, err := k.r.ReadByte()
	if err != nil {
		return 0, false, err
	}

	return b, true, nil
}

// ReadByte blocks until a keystroke is available.
func (k *terminalKeyboard) ReadByte() (byte, error) {
	return k.r.ReadByte()
}

// selectReady reports whether fd has input pending, without consuming it.
func selectReady(fd int) (bool, error) {
	var readfds unix.FdSet
	readfds.Set(fd)

	timeout := unix.Timeval{Sec: 0, Usec: 0}

	n, err := unix.Select(fd+1, &readfds, nil, nil, &timeout)
	if err != nil {
		return false, err
	}

	return n != 0, nil
}

// terminalConsole adapts stdout to machine.ConsoleSink, flushing after
// every write so trap output appears immediately in raw mode.
type terminalConsole struct {
	w *bufio.Writer
}

func newTerminalConsole() *terminalConsole {
	return &terminalConsole{w: bufio.NewWriter(os.Stdout)}
}

func (c *terminalConsole) WriteBytes(b []byte) error {
	if _, err := c.w.Write(b); err != nil {
		return err
	}

	return c.w.Flush()
}
