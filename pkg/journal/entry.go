// Package journal defines the daily entry and goal records.
package journal

import (
	"sort"
	"strings"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
)

// GratitudeSlots is the fixed number of gratitude notes per entry.
const GratitudeSlots = 3

// Checklist holds the day's tasks keyed by a stable task key.
type Checklist struct {
	Checkboxes map[string]bool   `json:"checkboxes,omitempty"`
	TaskText   map[string]string `json:"taskText,omitempty"`
}

// Entry is one user's journal record for a single calendar date. A user
// has at most one entry per date.
type Entry struct {
	UserID     string                 `json:"userId"`
	Date       calendar.Date          `json:"date"`
	Mood       glyph.Mood             `json:"mood,omitempty"`
	Habits     map[string]bool        `json:"habits,omitempty"`
	Checklist  Checklist              `json:"checklist"`
	Gratitude  [GratitudeSlots]string `json:"gratitude"`
	Reflection string                 `json:"reflection,omitempty"`
	CreatedAt  Timestamp              `json:"createdAt"`
	UpdatedAt  Timestamp              `json:"updatedAt"`
}

// New returns an empty entry for the user and day.
func New(userID string, date calendar.Date) *Entry {
	return &Entry{
		UserID: userID,
		Date:   date,
		Habits: map[string]bool{},
	}
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := e
	if e.Habits != nil {
		out.Habits = make(map[string]bool, len(e.Habits))
		for k, v := range e.Habits {
			out.Habits[k] = v
		}
	}
	if e.Checklist.Checkboxes != nil {
		out.Checklist.Checkboxes = make(map[string]bool, len(e.Checklist.Checkboxes))
		for k, v := range e.Checklist.Checkboxes {
			out.Checklist.Checkboxes[k] = v
		}
	}
	if e.Checklist.TaskText != nil {
		out.Checklist.TaskText = make(map[string]string, len(e.Checklist.TaskText))
		for k, v := range e.Checklist.TaskText {
			out.Checklist.TaskText[k] = v
		}
	}
	return out
}

// Matches reports whether query appears, ignoring case, in the reflection
// or any gratitude note.
func (e Entry) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Reflection), q) {
		return true
	}
	for _, g := range e.Gratitude {
		if strings.Contains(strings.ToLower(g), q) {
			return true
		}
	}
	return false
}

// CompletedHabits lists the habit keys marked done, sorted.
func (e Entry) CompletedHabits() []string {
	out := make([]string, 0, len(e.Habits))
	for k, done := range e.Habits {
		if done {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// HasGratitude reports whether any gratitude slot has text.
func (e Entry) HasGratitude() bool {
	for _, g := range e.Gratitude {
		if strings.TrimSpace(g) != "" {
			return true
		}
	}
	return false
}
