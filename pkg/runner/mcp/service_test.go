package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/store"
)

var fixedNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := store.Load(store.NewConfig(t.TempDir(), store.BackendDiskv, "tester"))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := NewService(&app.Service{Repo: repo, UserID: "tester"})
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func strPtr(s string) *string { return &s }

func TestServiceSaveEntryMergesFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.SaveEntry(ctx, SaveEntryOptions{
		Mood:      strPtr("good"),
		Gratitude: []string{"coffee", "friends"},
		Habits:    map[string]bool{"read": true, "run": false},
	})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if first.Date != "2024-03-15" {
		t.Fatalf("expected today's date, got %s", first.Date)
	}
	if first.HabitsProgress != 50 {
		t.Fatalf("expected 50%% habits, got %v", first.HabitsProgress)
	}

	second, err := svc.SaveEntry(ctx, SaveEntryOptions{
		Date:       "2024-03-15",
		Reflection: strPtr("a grateful day"),
		Habits:     map[string]bool{"run": true},
	})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if second.Mood != "good" || second.MoodEmoji != "🙂" {
		t.Fatalf("expected mood kept, got %q %q", second.Mood, second.MoodEmoji)
	}
	if len(second.Gratitude) != 2 || second.HabitsProgress != 100 {
		t.Fatalf("unexpected merged entry %+v", second)
	}

	if _, err := svc.SaveEntry(ctx, SaveEntryOptions{Mood: strPtr("ecstatic")}); err == nil {
		t.Fatal("expected unknown mood error")
	}
	if _, err := svc.SaveEntry(ctx, SaveEntryOptions{Gratitude: []string{"a", "b", "c", "d"}}); err == nil {
		t.Fatal("expected too many gratitude notes error")
	}
}

func TestServiceSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.SaveEntry(ctx, SaveEntryOptions{Date: "2024-03-14", Reflection: strPtr("Grateful for sun")}); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if _, err := svc.AddGoal(ctx, app.GoalInput{Title: "Stay grateful", Target: 30, Unit: "days"}); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	results, err := svc.Search(ctx, SearchOptions{Query: "grateful"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	results, err = svc.Search(ctx, SearchOptions{Query: "grateful", Kinds: "goals"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Type != "goal" || results[0].Goal.Progress == nil {
		t.Fatalf("expected one goal with progress, got %+v", results)
	}

	results, err = svc.Search(ctx, SearchOptions{Query: "grateful", Limit: 1})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(results))
	}

	if _, err := svc.Search(ctx, SearchOptions{Query: "x", Range: "decade"}); err == nil {
		t.Fatal("expected range error")
	}
	if _, err := svc.Search(ctx, SearchOptions{Query: "x", Kinds: "notes"}); err == nil {
		t.Fatal("expected kinds error")
	}
}

func TestServiceGoals(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	g, err := svc.AddGoal(ctx, app.GoalInput{Title: "Read", Category: "learning", Target: 10})
	if err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if g.Progress == nil || *g.Progress != 0 {
		t.Fatalf("expected 0%% progress, got %v", g.Progress)
	}

	updated, err := svc.UpdateGoalProgress(ctx, g.ID, 4)
	if err != nil {
		t.Fatalf("UpdateGoalProgress failed: %v", err)
	}
	if *updated.Progress != 40 {
		t.Fatalf("expected 40%%, got %v", *updated.Progress)
	}

	if _, err := svc.CompleteGoal(ctx, g.ID, true); err != nil {
		t.Fatalf("CompleteGoal failed: %v", err)
	}
	open, err := svc.Goals(ctx, false)
	if err != nil {
		t.Fatalf("Goals failed: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("expected completed goal hidden, got %+v", open)
	}

	if _, err := svc.CompleteGoal(ctx, "missing", true); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceMonth(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.SaveEntry(ctx, SaveEntryOptions{Date: "2024-03-01", Mood: strPtr("excellent")}); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	view, err := svc.Month(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("Month failed: %v", err)
	}
	if view.Overview.Entries != 1 || !view.Overview.HasAverage {
		t.Fatalf("unexpected overview %+v", view.Overview)
	}
	if !view.Days[19].IsToday {
		t.Fatalf("expected March 15 to be today")
	}
}

func TestParseKinds(t *testing.T) {
	f, err := ParseKinds("")
	if err != nil || !f.Entries || !f.Goals {
		t.Fatalf("expected all kinds, got %+v %v", f, err)
	}
	f, err = ParseKinds("Entries")
	if err != nil || !f.Entries || f.Goals {
		t.Fatalf("expected entries only, got %+v %v", f, err)
	}
}
