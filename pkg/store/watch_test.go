package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/daylog/pkg/journal"
)

func TestPersistenceWatchEmitsEntryChanges(t *testing.T) {
	base := t.TempDir()
	repo, err := Load(NewConfig(base, BackendDiskv, "tester"))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	w, ok := repo.(Watcher)
	if !ok {
		t.Fatalf("diskv repository does not implement Watcher")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := repo.UpsertEntry(ctx, &journal.Entry{UserID: "tester", Date: day(1), Reflection: "hello"}); err != nil {
		t.Fatalf("store entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventEntriesChanged {
				if evt.UserID != "tester" {
					t.Fatalf("expected user 'tester', got %q", evt.UserID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for entry change event")
		}
	}
}

func TestEventForPath(t *testing.T) {
	p := &persistence{basePath: "/data"}
	got := p.eventForPath("/data/goals/" + toUser("u1") + "/abc")
	if got.Type != EventGoalsChanged || got.UserID != "u1" {
		t.Fatalf("unexpected event %+v", got)
	}
	if got := p.eventForPath("/data/other"); got.Type != EventInvalidated {
		t.Fatalf("expected invalidation, got %+v", got)
	}
}
