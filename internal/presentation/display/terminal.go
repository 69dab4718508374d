package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/presentation/layout"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const (
	LoadingTitle         = "Syncing Logbook..."
	DefaultLoadingDetail = "Connecting to Google Sheet..."
	ErrorTitle           = "Data Connection Issue"

	boxWidth = 56
)

var loadingChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Mode is what the screen currently shows
type Mode int

const (
	ModeNormal Mode = iota
	ModeLoading
	ModeError
	ModeHelp
)

// Frame is one complete description of the screen
type Frame struct {
	Loading       bool
	LoadingDetail string
	Error         string
	ShowHelp      bool
	LayoutStyle   int
	StatusMessage string
	Data          model.DashboardData
	Param         model.LayoutParam
}

// Mode resolves which screen the frame needs. Help wins over error, error over loading.
func (f Frame) Mode() Mode {
	switch {
	case f.ShowHelp:
		return ModeHelp
	case f.Error != "":
		return ModeError
	case f.Loading:
		return ModeLoading
	default:
		return ModeNormal
	}
}

type TerminalDisplay struct {
	mu                sync.Mutex
	out               io.Writer
	inAlternateScreen bool
	lastLayoutStyle   int
	isFirstRender     bool
	currentMode       Mode
}

// NewTerminalDisplay writes to out, or stdout when out is nil
func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalDisplay{
		out:           out,
		isFirstRender: true,
		currentMode:   ModeNormal,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen+util.ClearScreen+util.MoveCursorHome+util.ClearScrollback+util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.ExitAltScreen)
	td.inAlternateScreen = false
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	td.clear()
}

func (td *TerminalDisplay) clear() {
	if td.inAlternateScreen {
		fmt.Fprint(td.out, util.ClearScreen+util.MoveCursorHome)
	}
}

// Render draws frame. Mode or layout changes clear the screen first,
// otherwise the frame is drawn over the previous one.
func (td *TerminalDisplay) Render(frame Frame) {
	td.mu.Lock()
	defer td.mu.Unlock()

	mode := frame.Mode()
	if td.isFirstRender || mode != td.currentMode || frame.LayoutStyle != td.lastLayoutStyle {
		td.clear()
		td.isFirstRender = false
		td.currentMode = mode
		td.lastLayoutStyle = frame.LayoutStyle
	} else if td.inAlternateScreen {
		fmt.Fprint(td.out, util.MoveCursorHome)
	}

	var b strings.Builder
	switch mode {
	case ModeHelp:
		b.WriteString(RenderHelp())
	case ModeError:
		b.WriteString(RenderErrorScreen(frame.Error))
	case ModeLoading:
		b.WriteString(RenderLoadingScreen(frame.LoadingDetail, frame.Param.Now.Unix()))
	default:
		b.WriteString(layout.GetLayoutStrategy(frame.LayoutStyle).Render(frame.Data, frame.Param))
		if frame.StatusMessage != "" {
			b.WriteString("  Status: " + util.Colorize(util.ColorYellow, frame.StatusMessage) + "\n")
		}
	}

	if td.inAlternateScreen {
		b.WriteString(util.ClearToEnd)
	}
	fmt.Fprint(td.out, b.String())
}

// RenderHelp lists the keyboard shortcuts
func RenderHelp() string {
	var b strings.Builder
	b.WriteString(util.FormatHeaderTitle("Dive Log Monitor - Help") + "\n")
	b.WriteString(strings.Repeat("═", 60) + "\n\n")
	b.WriteString(util.FormatDataTitle("Keyboard Shortcuts:") + "\n\n")
	b.WriteString("  ←/↑/p      - Newer date\n")
	b.WriteString("  →/↓/n      - Older date\n")
	b.WriteString("  r          - Sync now (retry on the error screen)\n")
	b.WriteString("  s          - Sort cards (entry, depth, duration, site)\n")
	b.WriteString("  t          - Change layout style (Full → Minimal)\n")
	b.WriteString("  h          - Show this help\n")
	b.WriteString("  q/Esc/^C   - Quit the program\n\n")
	b.WriteString(util.FormatDataTitle("Layout Styles:") + "\n")
	b.WriteString("  Full Dashboard - Stats, AI condition report and dive cards\n")
	b.WriteString("  Minimal        - One line for the selected date\n\n")
	b.WriteString(strings.Repeat("═", 60) + "\n")
	b.WriteString("Press 'h' to return...\n")
	return b.String()
}

// RenderLoadingScreen draws the first-load box. tick picks the spinner frame.
func RenderLoadingScreen(detail string, tick int64) string {
	if detail == "" {
		detail = DefaultLoadingDetail
	}
	if tick < 0 {
		tick = -tick
	}
	spinner := loadingChars[tick%int64(len(loadingChars))]

	return box("Dive Log Monitor", []string{
		"",
		spinner + " " + LoadingTitle,
		detail,
		"",
		"Press 'q' to quit",
	})
}

// RenderErrorScreen draws the blocking failure box with retry instructions
func RenderErrorScreen(message string) string {
	lines := []string{""}
	lines = append(lines, wrapText(message, boxWidth-4)...)
	lines = append(lines, "", "Press 'r' to retry · 'q' to quit")
	return box("⚠ "+ErrorTitle, lines)
}

func box(title string, lines []string) string {
	inner := boxWidth - 2

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("╔" + strings.Repeat("═", inner) + "╗\n")
	b.WriteString("║" + util.CenterText(title, inner) + "║\n")
	b.WriteString("╠" + strings.Repeat("═", inner) + "╣\n")
	for _, line := range lines {
		b.WriteString("║" + util.CenterText(line, inner) + "║\n")
	}
	b.WriteString("╚" + strings.Repeat("═", inner) + "╝\n")
	return b.String()
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}

	if util.GetDisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if util.GetDisplayWidth(currentLine)+1+util.GetDisplayWidth(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
