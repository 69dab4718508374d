package sheet

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const defaultDebounce = 250 * time.Millisecond

// FileWatcher signals when a local CSV export changes on disk.
// Editors often write a file as several events; they are coalesced.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewFileWatcher watches the directory holding path, so atomic
// replace-by-rename saves are seen too
func NewFileWatcher(path string, debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fw := &FileWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case fw.changes <- struct{}{}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Changes delivers one signal per burst of writes to the watched file
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
