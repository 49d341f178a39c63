package journal

import (
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
)

func TestGoalDecodesStringQuantities(t *testing.T) {
	var g Goal
	data := `{"id":"g1","title":"Read","currentValue":"150","targetValue":"100","deadline":"2024-06-30"}`
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.CurrentValue != 150 || g.TargetValue != 100 {
		t.Fatalf("unexpected quantities %v/%v", g.CurrentValue, g.TargetValue)
	}
	if g.Deadline == nil || *g.Deadline != calendar.NewDate(2024, time.June, 30) {
		t.Fatalf("unexpected deadline %v", g.Deadline)
	}

	var blank Goal
	if err := json.Unmarshal([]byte(`{"targetValue":"","currentValue":3}`), &blank); err != nil {
		t.Fatalf("unmarshal blank: %v", err)
	}
	if blank.TargetValue != 0 || blank.CurrentValue != 3 {
		t.Fatalf("unexpected quantities %v/%v", blank.CurrentValue, blank.TargetValue)
	}

	if err := json.Unmarshal([]byte(`{"targetValue":"lots"}`), &blank); err == nil {
		t.Fatalf("expected error for non-numeric quantity")
	}
}

func TestEntryRoundTrip(t *testing.T) {
	created := time.Date(2024, time.March, 1, 20, 30, 0, 0, time.UTC)
	e := Entry{
		UserID:     "u1",
		Date:       calendar.NewDate(2024, time.March, 1),
		Mood:       glyph.Good,
		Habits:     map[string]bool{"exercise": true},
		Gratitude:  [GratitudeSlots]string{"sun", "", "tea"},
		Reflection: "grateful for sun",
		CreatedAt:  Timestamp{Time: created},
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Date != e.Date || back.Mood != e.Mood || back.Gratitude != e.Gratitude {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if !back.CreatedAt.Equal(created) {
		t.Fatalf("expected created %v, got %v", created, back.CreatedAt)
	}
	if !back.UpdatedAt.IsZero() {
		t.Fatalf("expected zero updatedAt, got %v", back.UpdatedAt)
	}
}

func TestEntryMatchesIgnoresCase(t *testing.T) {
	e := Entry{Reflection: "Grateful for the SUN", Gratitude: [GratitudeSlots]string{"", "Family dinner"}}
	for _, q := range []string{"grateful", "sun", "FAMILY"} {
		if !e.Matches(q) {
			t.Errorf("expected %q to match", q)
		}
	}
	if e.Matches("rain") {
		t.Errorf("did not expect rain to match")
	}
}

func TestEntryCloneIsDeep(t *testing.T) {
	e := Entry{Habits: map[string]bool{"water": false}}
	c := e.Clone()
	c.Habits["water"] = true
	if e.Habits["water"] {
		t.Fatalf("clone shares the habits map")
	}
}

func TestParseCategoryAndPriority(t *testing.T) {
	if c, err := ParseCategory("Health"); err != nil || c != CategoryHealth {
		t.Fatalf("expected health, got %q %v", c, err)
	}
	if _, err := ParseCategory("hobby"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if p, err := ParsePriority(""); err != nil || p != PriorityMedium {
		t.Fatalf("expected medium default, got %q %v", p, err)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestCompletedHabitsSorted(t *testing.T) {
	e := Entry{Habits: map[string]bool{"walk": true, "run": false, "read": true}}
	got := e.CompletedHabits()
	if len(got) != 2 || got[0] != "read" || got[1] != "walk" {
		t.Fatalf("expected [read walk], got %v", got)
	}
	if n := len(Entry{}.CompletedHabits()); n != 0 {
		t.Fatalf("expected no habits, got %d", n)
	}
}
