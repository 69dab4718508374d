package top

import (
	"context"
	"sync"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/util"
)

// Poller triggers a background refresh on a fixed interval.
// Start and Stop each take effect at most once; Stop before Start disables the poller.
type Poller struct {
	interval  time.Duration
	refresher RefreshStarter

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewPoller(interval time.Duration, refresher RefreshStarter) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval:  interval,
		refresher: refresher,
	}
}

// Start launches the ticker goroutine. The first tick fires after one interval.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		pollCtx, cancel := context.WithCancel(ctx)
		p.cancel = cancel
		p.done = make(chan struct{})
		go p.loop(pollCtx)
	})
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			util.LogDebug("Checking for new dive data...")
			p.refresher.Start(ctx, TriggerPoll)
		}
	}
}

// Stop cancels the ticker and waits for the goroutine to exit
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.startOnce.Do(func() {})
		if p.cancel == nil {
			return
		}
		p.cancel()
		<-p.done
	})
}
