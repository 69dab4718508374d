package top

import (
	"context"

	"github.com/penwyp/go-dive-monitor/internal/presentation/display"
	"github.com/penwyp/go-dive-monitor/internal/presentation/interaction"
)

// RefreshStarter starts a background ingestion cycle
type RefreshStarter interface {
	// Start reports whether a cycle was started for trigger
	Start(ctx context.Context, trigger Trigger) bool
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearScreen clears the terminal screen
	ClearScreen()
	// Render draws one frame
	Render(frame display.Frame)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// ChangeNotifier signals when a watched data source changed
type ChangeNotifier interface {
	Changes() <-chan struct{}
	Close() error
}
