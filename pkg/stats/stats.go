// Package stats aggregates habit, mood and goal progress.
package stats

import (
	"math"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
)

// HabitsProgress returns the share of habits marked done, in percent.
// No habits at all counts as 0.
func HabitsProgress(habits map[string]bool) float64 {
	if len(habits) == 0 {
		return 0
	}
	done := 0
	for _, v := range habits {
		if v {
			done++
		}
	}
	return 100 * float64(done) / float64(len(habits))
}

// GoalProgress returns current/target in percent, clamped to 100. ok is
// false when the goal has no positive target, in which case no progress
// bar should be drawn.
func GoalProgress(g journal.Goal) (pct float64, ok bool) {
	if g.TargetValue <= 0 {
		return 0, false
	}
	pct = 100 * float64(g.CurrentValue) / float64(g.TargetValue)
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct, true
}

// AverageMood averages the scores of entries that have a mood and maps the
// mean back to a label, rounding halves up. ok is false when no entry has a
// mood.
func AverageMood(entries []journal.Entry) (glyph.Mood, bool) {
	sum, n := 0, 0
	for _, e := range entries {
		if s := e.Mood.Score(); s > 0 {
			sum += s
			n++
		}
	}
	if n == 0 {
		return glyph.NoMood, false
	}
	avg := float64(sum) / float64(n)
	return glyph.MoodForScore(int(math.Floor(avg + 0.5)))
}

// DayLegend picks the calendar color bucket for a day.
func DayLegend(e *journal.Entry) glyph.Legend {
	if e == nil {
		return glyph.NoEntryLegend
	}
	return glyph.LegendForProgress(HabitsProgress(e.Habits))
}

// Overview is the month summary shown under the calendar.
type Overview struct {
	Entries       int        `json:"entries"`
	FullHabitDays int        `json:"fullHabitDays"`
	AverageMood   glyph.Mood `json:"averageMood,omitempty"`
	HasAverage    bool       `json:"hasAverage"`
}

// MonthOverview summarises the entries of one month.
func MonthOverview(entries []journal.Entry) Overview {
	o := Overview{Entries: len(entries)}
	for _, e := range entries {
		if HabitsProgress(e.Habits) == 100 {
			o.FullHabitDays++
		}
	}
	o.AverageMood, o.HasAverage = AverageMood(entries)
	return o
}

// GoalSummary aggregates goals by category and priority.
type GoalSummary struct {
	Total           int                      `json:"total"`
	Completed       int                      `json:"completed"`
	ByCategory      map[journal.Category]int `json:"byCategory"`
	ByPriority      map[journal.Priority]int `json:"byPriority"`
	AverageProgress float64                  `json:"averageProgress"`
}

// SummarizeGoals counts every goal; goals without a target add 0% to the
// average progress.
func SummarizeGoals(goals []journal.Goal) GoalSummary {
	s := GoalSummary{
		ByCategory: make(map[journal.Category]int),
		ByPriority: make(map[journal.Priority]int),
	}
	total := 0.0
	for _, g := range goals {
		s.Total++
		if g.Completed {
			s.Completed++
		}
		s.ByCategory[g.Category]++
		s.ByPriority[g.Priority]++
		pct, _ := GoalProgress(g)
		total += pct
	}
	if s.Total > 0 {
		s.AverageProgress = total / float64(s.Total)
	}
	return s
}
