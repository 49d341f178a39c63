package app

import (
	"context"
	"fmt"
	"sort"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/stats"
)

// ReportDay captures one journaled day inside a report window.
type ReportDay struct {
	Date           calendar.Date `json:"date"`
	Mood           glyph.Mood    `json:"mood,omitempty"`
	HabitsProgress float64       `json:"habitsProgress"`
	Gratitude      int           `json:"gratitude"`
}

// HabitTally counts how often a habit was done across the report window.
type HabitTally struct {
	Name  string `json:"name"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// ReportResult encapsulates a journaling report for a date window.
type ReportResult struct {
	Since    calendar.Date  `json:"since"`
	Until    calendar.Date  `json:"until"`
	Days     []ReportDay    `json:"days"`
	Habits   []HabitTally   `json:"habits"`
	Overview stats.Overview `json:"overview"`
}

// Report summarises the entries dated between since and until inclusive.
func (s *Service) Report(ctx context.Context, since, until calendar.Date) (ReportResult, error) {
	if err := s.ready(); err != nil {
		return ReportResult{}, err
	}
	if since.After(until) {
		since, until = until, since
	}
	entries, err := s.Repo.EntriesBetween(ctx, s.UserID, since, until)
	if err != nil {
		return ReportResult{}, fmt.Errorf("app: load report: %w", err)
	}

	tallies := make(map[string]*HabitTally)
	days := make([]ReportDay, 0, len(entries))
	for _, e := range entries {
		day := ReportDay{
			Date:           e.Date,
			Mood:           e.Mood,
			HabitsProgress: stats.HabitsProgress(e.Habits),
		}
		for _, g := range e.Gratitude {
			if g != "" {
				day.Gratitude++
			}
		}
		days = append(days, day)

		for name, done := range e.Habits {
			t, ok := tallies[name]
			if !ok {
				t = &HabitTally{Name: name}
				tallies[name] = t
			}
			t.Total++
			if done {
				t.Done++
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	habits := make([]HabitTally, 0, len(tallies))
	for _, t := range tallies {
		habits = append(habits, *t)
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].Name < habits[j].Name })

	return ReportResult{
		Since:    since,
		Until:    until,
		Days:     days,
		Habits:   habits,
		Overview: stats.MonthOverview(entries),
	}, nil
}
