//go:build darwin

package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

// enableRawMode sets the terminal to raw mode on Darwin/macOS
func (kr *KeyboardReader) enableRawMode() error {
	return kr.setRawMode(unix.TIOCGETA, unix.TIOCSETA)
}

// disableRawMode restores the terminal to normal mode on Darwin/macOS
func (kr *KeyboardReader) disableRawMode() error {
	if kr.oldState == nil {
		return nil
	}
	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TIOCSETA, kr.oldState)
}
