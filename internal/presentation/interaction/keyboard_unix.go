//go:build linux || darwin

package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

func (kr *KeyboardReader) setRawMode(getReq, setReq uint) error {
	fd := int(os.Stdin.Fd())

	// Get current terminal state
	oldState, err := unix.IoctlGetTermios(fd, getReq)
	if err != nil {
		return err
	}
	kr.oldState = oldState

	// Create new state for raw mode
	newState := *oldState
	newState.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	// Keep ISIG enabled to allow Ctrl+C handling
	newState.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	newState.Cflag |= unix.CS8
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, setReq, &newState)
}
