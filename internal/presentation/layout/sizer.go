package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-dive-monitor/internal/util"
	"golang.org/x/term"
)

const (
	fallbackWidth = 78
	minWidth      = 40
	maxWidth      = 120
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

type Sizer struct {
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width, handling emojis correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// GetMaxWidth returns the usable frame width. A positive requested width
// wins over the terminal size.
func (i Sizer) GetMaxWidth(requested int) int {
	if requested > 0 {
		return clampWidth(requested)
	}

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < minWidth {
		return fallbackWidth
	}

	width := clampWidth(termWidth - 2)
	util.LogDebugf("GetMaxWidth %d", width)
	return width
}

func clampWidth(w int) int {
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}
