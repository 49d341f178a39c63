package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventEntriesChanged indicates a journal entry was written or removed.
	EventEntriesChanged EventType = iota

	// EventGoalsChanged indicates a goal was written or removed.
	EventGoalsChanged

	// EventInvalidated signals a change that could not be classified;
	// callers should refresh everything.
	EventInvalidated
)

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type   EventType
	UserID string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// event triggers a full refresh anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// Kind and user directories appear on first write.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						if err := p.watchTree(watcher, watched, evt.Name); err != nil {
							fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", evt.Name, err)
						}
						throttle.Enqueue(Event{Type: EventInvalidated}, send)
						continue
					}
				}

				throttle.Enqueue(p.eventForPath(evt.Name), send)
			}
		}
	}()

	return events, nil
}

// watchTree adds dir and any directories below it that are not yet watched.
func (p *persistence) watchTree(watcher *fsnotify.Watcher, watched map[string]struct{}, dir string) error {
	dirs, err := collectDirs(filepath.Clean(dir))
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if _, found := watched[d]; found {
			continue
		}
		if err := watcher.Add(d); err != nil {
			return err
		}
		watched[d] = struct{}{}
	}
	return nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventForPath classifies a diskv file path as an entry or goal change.
func (p *persistence) eventForPath(path string) Event {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return Event{Type: EventInvalidated}
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 3 {
		return Event{Type: EventInvalidated}
	}
	user := fromUser(parts[1])
	switch parts[0] {
	case kindEntries:
		return Event{Type: EventEntriesChanged, UserID: user}
	case kindGoals:
		return Event{Type: EventGoalsChanged, UserID: user}
	default:
		return Event{Type: EventInvalidated}
	}
}

// eventThrottle coalesces rapid change notifications so listeners react
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	for ev := range pending {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
