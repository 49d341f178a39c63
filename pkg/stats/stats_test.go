package stats

import (
	"testing"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
)

func TestHabitsProgress(t *testing.T) {
	got := HabitsProgress(map[string]bool{"exercise": true, "water": true, "sleep": false, "reading": false})
	if got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := HabitsProgress(nil); got != 0 {
		t.Fatalf("expected 0 for nil habits, got %v", got)
	}
	if got := HabitsProgress(map[string]bool{}); got != 0 {
		t.Fatalf("expected 0 for empty habits, got %v", got)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := map[string]struct {
		goal   journal.Goal
		want   float64
		wantOK bool
	}{
		"clamped":   {journal.Goal{CurrentValue: 150, TargetValue: 100}, 100, true},
		"partial":   {journal.Goal{CurrentValue: 25, TargetValue: 100}, 25, true},
		"no target": {journal.Goal{CurrentValue: 5}, 0, false},
		"negative":  {journal.Goal{CurrentValue: 5, TargetValue: -1}, 0, false},
	}
	for name, tc := range tests {
		got, ok := GoalProgress(tc.goal)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("%s: expected %v/%v, got %v/%v", name, tc.want, tc.wantOK, got, ok)
		}
	}
}

func moodEntries(moods ...glyph.Mood) []journal.Entry {
	out := make([]journal.Entry, 0, len(moods))
	for _, m := range moods {
		out = append(out, journal.Entry{Mood: m})
	}
	return out
}

func TestAverageMood(t *testing.T) {
	tests := map[string]struct {
		entries []journal.Entry
		want    glyph.Mood
		wantOK  bool
	}{
		"half rounds up":  {moodEntries(glyph.Good, glyph.Neutral), glyph.Good, true},
		"below half":      {moodEntries(glyph.Excellent, glyph.Bad, glyph.Bad), glyph.Neutral, true},
		"missing ignored": {moodEntries(glyph.Terrible, glyph.NoMood), glyph.Terrible, true},
		"no moods":        {moodEntries(glyph.NoMood, glyph.NoMood), glyph.NoMood, false},
		"no entries":      {nil, glyph.NoMood, false},
	}
	for name, tc := range tests {
		got, ok := AverageMood(tc.entries)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("%s: expected %q/%v, got %q/%v", name, tc.want, tc.wantOK, got, ok)
		}
	}
}

func TestDayLegend(t *testing.T) {
	if got := DayLegend(nil); got != glyph.NoEntryLegend {
		t.Fatalf("expected no-entry legend, got %v", got)
	}
	// An entry with no habits is a red day, not a missing one.
	if got := DayLegend(&journal.Entry{}).Name; got != "red" {
		t.Fatalf("expected red for 0%%, got %s", got)
	}
	full := &journal.Entry{Habits: map[string]bool{"a": true, "b": true}}
	if got := DayLegend(full).Name; got != "green" {
		t.Fatalf("expected green, got %s", got)
	}
}

func TestMonthOverview(t *testing.T) {
	entries := []journal.Entry{
		{Mood: glyph.Excellent, Habits: map[string]bool{"a": true}},
		{Mood: glyph.Good, Habits: map[string]bool{"a": true, "b": false}},
		{Habits: map[string]bool{"a": true, "b": true}},
	}
	o := MonthOverview(entries)
	if o.Entries != 3 || o.FullHabitDays != 2 {
		t.Fatalf("unexpected overview %+v", o)
	}
	if !o.HasAverage || o.AverageMood != glyph.Excellent {
		t.Fatalf("expected excellent average (4.5 rounds up), got %+v", o)
	}
}

func TestSummarizeGoals(t *testing.T) {
	goals := []journal.Goal{
		{Category: journal.CategoryHealth, Priority: journal.PriorityHigh, CurrentValue: 50, TargetValue: 100},
		{Category: journal.CategoryHealth, Priority: journal.PriorityLow, Completed: true, CurrentValue: 10, TargetValue: 10},
		{Category: journal.CategoryCareer, Priority: journal.PriorityLow},
	}
	s := SummarizeGoals(goals)
	if s.Total != 3 || s.Completed != 1 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.ByCategory[journal.CategoryHealth] != 2 || s.ByCategory[journal.CategoryCareer] != 1 {
		t.Fatalf("unexpected categories %v", s.ByCategory)
	}
	if s.ByPriority[journal.PriorityLow] != 2 {
		t.Fatalf("unexpected priorities %v", s.ByPriority)
	}
	if s.AverageProgress != 50 {
		t.Fatalf("expected average 50, got %v", s.AverageProgress)
	}
}
