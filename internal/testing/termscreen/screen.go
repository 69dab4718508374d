// Package termscreen replays terminal output into a virtual screen so tests
// can assert on what the user would actually see after in-place redraws.
package termscreen

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes all CSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Screen is a fixed-size grid of cells with a cursor
type Screen struct {
	rows, cols int
	cells      [][]rune
	x, y       int
	altScreen  bool
}

// New creates a blank screen
func New(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols}
	s.cells = make([][]rune, rows)
	for i := range s.cells {
		s.cells[i] = blankLine(cols)
	}
	return s
}

func blankLine(cols int) []rune {
	line := make([]rune, cols)
	for i := range line {
		line[i] = ' '
	}
	return line
}

// Replay writes output onto a fresh 40x140 screen
func Replay(output string) *Screen {
	s := New(40, 140)
	s.Write(output)
	return s
}

// Write interprets output, including cursor and erase sequences
func (s *Screen) Write(output string) {
	runes := []rune(output)
	for i := 0; i < len(runes); {
		switch r := runes[i]; {
		case r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.csi(runes, i+2)
		case r == '\r':
			s.x = 0
			i++
		case r == '\n':
			s.newline()
			i++
		default:
			s.put(r)
			i++
		}
	}
}

// csi parses one control sequence starting after "ESC [" and returns the next index
func (s *Screen) csi(runes []rune, i int) int {
	private := false
	var params []int
	current, seen := 0, false

	for ; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '?':
			private = true
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
			seen = true
		case r == ';':
			params = append(params, current)
			current, seen = 0, false
		default:
			if seen {
				params = append(params, current)
			}
			s.command(r, params, private)
			return i + 1
		}
	}
	return i
}

func param(params []int, idx, def int) int {
	if idx < len(params) && params[idx] > 0 {
		return params[idx]
	}
	return def
}

func (s *Screen) command(cmd rune, params []int, private bool) {
	if private {
		if len(params) == 1 && params[0] == 1049 {
			s.altScreen = cmd == 'h'
			s.clear(0, s.rows)
			s.x, s.y = 0, 0
		}
		return
	}

	switch cmd {
	case 'H', 'f':
		s.y = min(param(params, 0, 1)-1, s.rows-1)
		s.x = min(param(params, 1, 1)-1, s.cols-1)
	case 'J':
		switch param(params, 0, 0) {
		case 0:
			s.clearLineFrom(s.y, s.x)
			s.clear(s.y+1, s.rows)
		case 2, 3:
			s.clear(0, s.rows)
		}
	case 'K':
		switch param(params, 0, 0) {
		case 0:
			s.clearLineFrom(s.y, s.x)
		case 2:
			s.cells[s.y] = blankLine(s.cols)
		}
	}
	// SGR and anything else leave the grid untouched
}

func (s *Screen) clear(from, to int) {
	for y := from; y < to; y++ {
		s.cells[y] = blankLine(s.cols)
	}
}

func (s *Screen) clearLineFrom(y, x int) {
	for i := x; i < s.cols; i++ {
		s.cells[y][i] = ' '
	}
}

func (s *Screen) newline() {
	s.x = 0
	if s.y == s.rows-1 {
		copy(s.cells, s.cells[1:])
		s.cells[s.rows-1] = blankLine(s.cols)
		return
	}
	s.y++
}

func (s *Screen) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if s.x+w > s.cols {
		s.newline()
	}
	s.cells[s.y][s.x] = r
	// Wide runes own the following cell
	for i := 1; i < w; i++ {
		s.cells[s.y][s.x+i] = 0
	}
	s.x += w
}

// Lines returns every row with trailing blanks removed
func (s *Screen) Lines() []string {
	lines := make([]string, s.rows)
	for y, row := range s.cells {
		var b strings.Builder
		for _, r := range row {
			if r != 0 {
				b.WriteRune(r)
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// Text returns the visible screen with trailing empty rows removed
func (s *Screen) Text() string {
	return strings.TrimRight(strings.Join(s.Lines(), "\n"), "\n")
}

// Contains reports whether text is visible anywhere on the screen
func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.Text(), text)
}

// InAltScreen reports whether the alternate buffer is active
func (s *Screen) InAltScreen() bool {
	return s.altScreen
}
