//go:build linux

package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

func (kr *KeyboardReader) enableRawMode() error {
	return kr.setRawMode(unix.TCGETS, unix.TCSETS)
}

func (kr *KeyboardReader) disableRawMode() error {
	if kr.oldState == nil {
		return nil
	}
	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, kr.oldState)
}
