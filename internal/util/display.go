package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"

	EnterAltScreen  = "\033[?1049h"
	ExitAltScreen   = "\033[?1049l"
	ClearScreen     = "\033[2J"
	ClearToEnd      = "\033[J"
	ClearScrollback = "\033[3J"
	MoveCursorHome  = "\033[H"
	HideCursor      = "\033[?25l"
	ShowCursor      = "\033[?25h"
)

// GetDisplayWidth calculates the display width of a string, accounting for wide runes and emoji
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to width display cells, ending with an ellipsis when cut
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// PadRight pads text with spaces up to width display cells
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// PadLeft pads text with leading spaces up to width display cells
func PadLeft(text string, width int) string {
	return runewidth.FillLeft(text, width)
}

// CenterText centers text within the given display width
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return Truncate(text, width)
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}

// Colorize wraps text in an ANSI color
func Colorize(color, text string) string {
	return fmt.Sprintf("%s%s%s", color, text, ColorReset)
}

// FormatHeaderTitle formats main header titles (Blue + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorBlue, title, ColorReset)
}

// FormatDataTitle formats data section titles (Cyan + Bold)
func FormatDataTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}
