package interaction

import (
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	oldState  *unix.Termios
	in        io.Reader
	input     chan KeyEvent
	stop      chan struct{}
	closeOnce sync.Once
	raw       bool
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

const KeyCtrlC rune = 3

// NewKeyboardReader puts stdin in raw mode and starts reading it
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := newKeyboardReader(os.Stdin)

	// Set terminal to raw mode
	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}
	kr.raw = true

	// Start reading keyboard input
	go kr.readInput()

	return kr, nil
}

// NewReader decodes key events from r without touching terminal modes
func NewReader(r io.Reader) *KeyboardReader {
	kr := newKeyboardReader(r)
	go kr.readInput()
	return kr
}

func newKeyboardReader(r io.Reader) *KeyboardReader {
	return &KeyboardReader{
		in:    r,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := kr.in.Read(buf)
		if err == io.EOF {
			return
		}
		if err != nil || n == 0 {
			continue
		}

		event := parseInput(buf[:n])
		if event == nil {
			continue
		}
		select {
		case kr.input <- *event:
		case <-kr.stop:
			return
		}
	}
}

// parseInput parses raw keyboard input
func parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	if buf[0] == byte(KeyCtrlC) {
		return &KeyEvent{Key: KeyCtrlC, Type: KeyChar}
	}

	// Handle escape sequences
	if buf[0] == 27 {
		if len(buf) == 1 {
			return &KeyEvent{Key: 27, Type: KeyEscape}
		}
		if len(buf) >= 3 && (buf[1] == '[' || buf[1] == 'O') {
			switch buf[2] {
			case 'A':
				return &KeyEvent{Type: KeyUp}
			case 'B':
				return &KeyEvent{Type: KeyDown}
			case 'C':
				return &KeyEvent{Type: KeyRight}
			case 'D':
				return &KeyEvent{Type: KeyLeft}
			}
		}
		return nil
	}

	// Handle regular characters
	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	var err error
	kr.closeOnce.Do(func() {
		close(kr.stop)
		if kr.raw {
			err = kr.disableRawMode()
		}
	})
	return err
}
