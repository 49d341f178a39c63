package app

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/stats"
)

// MonthDay is a grid cell annotated with the day's entry.
type MonthDay struct {
	calendar.DayCell
	Entry  *journal.Entry `json:"entry,omitempty"`
	Legend glyph.Legend   `json:"legend"`
	Emoji  string         `json:"emoji,omitempty"`
}

// MonthView is everything the calendar screen shows for one month.
type MonthView struct {
	Year     int            `json:"year"`
	Month    time.Month     `json:"month"`
	Days     []MonthDay     `json:"days"`
	Overview stats.Overview `json:"overview"`
}

// MonthView builds the 42-cell grid for the month and attaches the user's
// entries. Padding cells from neighbouring months carry no entry.
func (s *Service) MonthView(ctx context.Context, month time.Month, year int, today calendar.Date) (MonthView, error) {
	if err := s.ready(); err != nil {
		return MonthView{}, err
	}
	first := calendar.NewDate(year, month, 1)
	last := calendar.LastOfMonth(first)

	entries, err := s.Repo.EntriesBetween(ctx, s.UserID, first, last)
	if err != nil {
		return MonthView{}, fmt.Errorf("app: load month: %w", err)
	}
	byDate := make(map[calendar.Date]*journal.Entry, len(entries))
	for i := range entries {
		byDate[entries[i].Date] = &entries[i]
	}

	cells := s.Grids.Grid(first.Month, first.Year, today)
	days := make([]MonthDay, 0, len(cells))
	for _, c := range cells {
		d := MonthDay{DayCell: c, Legend: glyph.NoEntryLegend}
		if c.IsCurrentMonth {
			if e, ok := byDate[c.Date]; ok {
				d.Entry = e
				d.Legend = stats.DayLegend(e)
				d.Emoji = e.Mood.Emoji()
			}
		}
		days = append(days, d)
	}

	return MonthView{
		Year:     first.Year,
		Month:    first.Month,
		Days:     days,
		Overview: stats.MonthOverview(entries),
	}, nil
}
