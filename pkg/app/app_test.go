package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/search"
	"tableflip.dev/daylog/pkg/store"
)

type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]map[calendar.Date]journal.Entry
	goals   map[string]journal.Goal
	calls   []string
	failOn  string
}

func newMemoryRepository(entries ...journal.Entry) *memoryRepository {
	m := &memoryRepository{
		entries: make(map[string]map[calendar.Date]journal.Entry),
		goals:   make(map[string]journal.Goal),
	}
	for _, e := range entries {
		m.put(e)
	}
	return m
}

func (m *memoryRepository) put(e journal.Entry) {
	if m.entries[e.UserID] == nil {
		m.entries[e.UserID] = make(map[calendar.Date]journal.Entry)
	}
	m.entries[e.UserID][e.Date] = e.Clone()
}

func (m *memoryRepository) record(call string) error {
	m.calls = append(m.calls, call)
	if m.failOn == call {
		return errors.New("boom")
	}
	return nil
}

func (m *memoryRepository) sortedEntries(userID string, keep func(journal.Entry) bool) []journal.Entry {
	var out []journal.Entry
	for _, e := range m.entries[userID] {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *memoryRepository) SearchEntries(_ context.Context, userID, query string) ([]journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("SearchEntries"); err != nil {
		return nil, err
	}
	return m.sortedEntries(userID, func(e journal.Entry) bool { return e.Matches(query) }), nil
}

func (m *memoryRepository) SearchGoals(_ context.Context, userID, query string) ([]journal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("SearchGoals"); err != nil {
		return nil, err
	}
	var out []journal.Goal
	for _, g := range m.goals {
		if g.UserID == userID && g.Matches(query) {
			out = append(out, g.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepository) EntriesBetween(_ context.Context, userID string, from, to calendar.Date) ([]journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("EntriesBetween"); err != nil {
		return nil, err
	}
	return m.sortedEntries(userID, func(e journal.Entry) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	}), nil
}

func (m *memoryRepository) Entry(_ context.Context, userID string, date calendar.Date) (*journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[userID][date]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := e.Clone()
	return &cp, nil
}

func (m *memoryRepository) UpsertEntry(_ context.Context, e *journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpsertEntry"); err != nil {
		return err
	}
	m.put(*e)
	return nil
}

func (m *memoryRepository) Goals(_ context.Context, userID string) ([]journal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []journal.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, g.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt.Time) })
	return out, nil
}

func (m *memoryRepository) Goal(_ context.Context, userID, id string) (*journal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := g.Clone()
	return &cp, nil
}

func (m *memoryRepository) SaveGoal(_ context.Context, g *journal.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = g.Clone()
	return nil
}

func (m *memoryRepository) DeleteGoal(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *memoryRepository) Close() error { return nil }

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func mar(d int) calendar.Date { return calendar.NewDate(2024, time.March, d) }

func TestSearchBlankQuerySkipsRepository(t *testing.T) {
	repo := newMemoryRepository()
	svc := &Service{Repo: repo, UserID: "u1"}
	got, err := svc.Search(context.Background(), search.Query{Text: "   ", Filters: search.AllKinds}, now)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	if len(repo.calls) != 0 {
		t.Fatalf("expected no repository calls, got %v", repo.calls)
	}
}

func TestSearchFetchesOnlyEnabledKinds(t *testing.T) {
	repo := newMemoryRepository(journal.Entry{UserID: "u1", Date: mar(14), Reflection: "a sunny walk"})
	repo.goals["g1"] = journal.Goal{ID: "g1", UserID: "u1", Title: "sunny holiday"}
	svc := &Service{Repo: repo, UserID: "u1"}

	q := search.Query{Text: "sunny", Filters: search.Filters{Entries: true}, Range: search.RangeAll, SortBy: search.SortRelevance}
	got, err := svc.Search(context.Background(), q, now)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Kind != search.KindEntry {
		t.Fatalf("expected a single entry result, got %+v", got)
	}
	if strings.Join(repo.calls, ",") != "SearchEntries" {
		t.Fatalf("unexpected calls %v", repo.calls)
	}
}

func TestSearchReturnsRetrievalErrorWithoutResults(t *testing.T) {
	repo := newMemoryRepository(journal.Entry{UserID: "u1", Date: mar(14), Reflection: "sunny"})
	repo.failOn = "SearchGoals"
	svc := &Service{Repo: repo, UserID: "u1"}

	got, err := svc.Search(context.Background(), search.Query{Text: "sunny", Filters: search.AllKinds}, now)
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Fatalf("expected no partial results, got %+v", got)
	}
}

func TestServiceRequiresRepositoryAndUser(t *testing.T) {
	ctx := context.Background()
	if _, err := (&Service{UserID: "u1"}).Goals(ctx); !errors.Is(err, ErrNoRepository) {
		t.Fatalf("expected ErrNoRepository, got %v", err)
	}
	if _, err := (&Service{Repo: newMemoryRepository()}).Goals(ctx); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestSaveEntryStampsTimes(t *testing.T) {
	repo := newMemoryRepository()
	svc := &Service{Repo: repo, UserID: "u1"}
	ctx := context.Background()

	first, err := svc.SaveEntry(ctx, &journal.Entry{Date: mar(1), Mood: glyph.Good}, now)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.UserID != "u1" || !first.CreatedAt.Equal(now) || !first.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected stamps %+v", first)
	}

	later := now.Add(time.Hour)
	second, err := svc.SaveEntry(ctx, &journal.Entry{Date: mar(1), Reflection: "edited"}, later)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !second.CreatedAt.Equal(now) {
		t.Fatalf("expected created time preserved, got %v", second.CreatedAt)
	}
	if !second.UpdatedAt.Equal(later) {
		t.Fatalf("expected updated time %v, got %v", later, second.UpdatedAt)
	}

	if _, err := svc.SaveEntry(ctx, &journal.Entry{Date: mar(2), Mood: "ecstatic"}, now); err == nil {
		t.Fatal("expected unknown mood error")
	}
	if _, err := svc.SaveEntry(ctx, &journal.Entry{}, now); err == nil {
		t.Fatal("expected missing date error")
	}
}

func TestEditEntryStartsFromStoredEntry(t *testing.T) {
	repo := newMemoryRepository(journal.Entry{UserID: "u1", Date: mar(3), Reflection: "keep me", Habits: map[string]bool{"read": false}})
	svc := &Service{Repo: repo, UserID: "u1"}

	got, err := svc.EditEntry(context.Background(), mar(3), now, func(e *journal.Entry) error {
		e.Habits["read"] = true
		return nil
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Reflection != "keep me" || !got.Habits["read"] {
		t.Fatalf("unexpected entry %+v", got)
	}

	fresh, err := svc.EditEntry(context.Background(), mar(4), now, func(e *journal.Entry) error {
		e.Mood = glyph.Neutral
		return nil
	})
	if err != nil {
		t.Fatalf("edit new: %v", err)
	}
	if fresh.Date != mar(4) || fresh.Mood != glyph.Neutral {
		t.Fatalf("unexpected new entry %+v", fresh)
	}
}

func TestMonthViewAnnotatesCurrentMonthOnly(t *testing.T) {
	repo := newMemoryRepository(
		journal.Entry{UserID: "u1", Date: mar(1), Mood: glyph.Excellent, Habits: map[string]bool{"a": true, "b": true}},
		journal.Entry{UserID: "u1", Date: mar(2), Mood: glyph.Bad, Habits: map[string]bool{"a": true, "b": false}},
		journal.Entry{UserID: "u1", Date: calendar.NewDate(2024, time.February, 29), Mood: glyph.Good},
	)
	grids, err := calendar.NewCache(4)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	svc := &Service{Repo: repo, UserID: "u1", Grids: grids}

	view, err := svc.MonthView(context.Background(), time.March, 2024, mar(15))
	if err != nil {
		t.Fatalf("month view: %v", err)
	}
	if len(view.Days) != calendar.GridCells {
		t.Fatalf("expected %d days, got %d", calendar.GridCells, len(view.Days))
	}
	// March 2024 starts on a Friday: five padding cells from February.
	if view.Days[4].Date != calendar.NewDate(2024, time.February, 29) || view.Days[4].Entry != nil {
		t.Fatalf("padding cell should carry no entry: %+v", view.Days[4])
	}
	if view.Days[4].Legend != glyph.NoEntryLegend {
		t.Fatalf("expected no-entry legend on padding, got %+v", view.Days[4].Legend)
	}
	first := view.Days[5]
	if first.Date != mar(1) || first.Entry == nil || first.Emoji != "😊" || first.Legend.Min != 100 {
		t.Fatalf("unexpected first day %+v", first)
	}
	second := view.Days[6]
	if second.Legend.Min != 40 {
		t.Fatalf("expected 50%% habits to map to the 40 bucket, got %+v", second.Legend)
	}
	if !view.Days[19].IsToday {
		t.Fatalf("expected March 15 flagged as today")
	}
	if view.Overview.Entries != 2 || view.Overview.FullHabitDays != 1 {
		t.Fatalf("unexpected overview %+v", view.Overview)
	}
	if view.Overview.AverageMood != glyph.Good {
		t.Fatalf("expected average (5+2)/2 to round up to good, got %q", view.Overview.AverageMood)
	}
}

func TestMonthViewNormalisesMonth(t *testing.T) {
	svc := &Service{Repo: newMemoryRepository(), UserID: "u1"}
	view, err := svc.MonthView(context.Background(), 13, 2024, calendar.Date{})
	if err != nil {
		t.Fatalf("month view: %v", err)
	}
	if view.Year != 2025 || view.Month != time.January {
		t.Fatalf("expected January 2025, got %v %d", view.Month, view.Year)
	}
}

func TestGoalLifecycle(t *testing.T) {
	repo := newMemoryRepository()
	svc := &Service{Repo: repo, UserID: "u1"}
	ctx := context.Background()

	if _, err := svc.AddGoal(ctx, GoalInput{Title: "  "}, now); err == nil {
		t.Fatal("expected title error")
	}
	if _, err := svc.AddGoal(ctx, GoalInput{Title: "x", Category: "hobby"}, now); err == nil {
		t.Fatal("expected category error")
	}
	if _, err := svc.AddGoal(ctx, GoalInput{Title: "x", Priority: "urgent"}, now); err == nil {
		t.Fatal("expected priority error")
	}

	g, err := svc.AddGoal(ctx, GoalInput{Title: " Read ", Category: "learning", Target: 10, Unit: "books"}, now)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if g.ID == "" || g.Title != "Read" || g.Priority != journal.PriorityMedium || g.Category != journal.CategoryLearning {
		t.Fatalf("unexpected goal %+v", g)
	}
	if _, err := svc.AddGoal(ctx, GoalInput{Title: "Save"}, now.Add(time.Minute)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.SetGoalProgress(ctx, g.ID, 5); err != nil {
		t.Fatalf("progress: %v", err)
	}
	done, err := svc.CompleteGoal(ctx, g.ID, true)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || done.CurrentValue != 5 {
		t.Fatalf("unexpected goal %+v", done)
	}

	summary, err := svc.GoalSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Total != 2 || summary.Completed != 1 || summary.ByCategory[journal.CategoryPersonal] != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.AverageProgress != 25 {
		t.Fatalf("expected average 25, got %v", summary.AverageProgress)
	}

	if err := svc.DeleteGoal(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.SetGoalProgress(ctx, g.ID, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReportTalliesHabits(t *testing.T) {
	repo := newMemoryRepository(
		journal.Entry{UserID: "u1", Date: mar(2), Habits: map[string]bool{"read": true, "run": false}, Gratitude: [3]string{"a", "", "c"}},
		journal.Entry{UserID: "u1", Date: mar(1), Habits: map[string]bool{"read": true}},
		journal.Entry{UserID: "u1", Date: mar(20), Habits: map[string]bool{"read": false}},
	)
	svc := &Service{Repo: repo, UserID: "u1"}

	got, err := svc.Report(context.Background(), mar(7), mar(1))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got.Since != mar(1) || got.Until != mar(7) {
		t.Fatalf("expected swapped bounds, got %v..%v", got.Since, got.Until)
	}
	if len(got.Days) != 2 || got.Days[0].Date != mar(1) || got.Days[1].Gratitude != 2 {
		t.Fatalf("unexpected days %+v", got.Days)
	}
	want := []HabitTally{{Name: "read", Done: 2, Total: 2}, {Name: "run", Done: 0, Total: 1}}
	if len(got.Habits) != len(want) {
		t.Fatalf("unexpected habits %+v", got.Habits)
	}
	for i := range want {
		if got.Habits[i] != want[i] {
			t.Fatalf("habit %d: want %+v, got %+v", i, want[i], got.Habits[i])
		}
	}
}
