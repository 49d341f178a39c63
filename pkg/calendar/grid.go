package calendar

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GridCells is the number of cells in a month grid: six Sunday-first weeks.
const GridCells = 42

// DayCell is one square of the month grid.
type DayCell struct {
	Date           Date `json:"date"`
	IsCurrentMonth bool `json:"isCurrentMonth"`
	IsToday        bool `json:"isToday"`
}

// BuildGrid lays out the month as 42 cells. Cells before the 1st hold the
// tail of the previous month and cells after the last day hold the start of
// the next one; only current-month cells can be flagged as today.
func BuildGrid(month time.Month, year int, today Date) []DayCell {
	cells := layout(month, year)
	markToday(cells, today)
	return cells
}

func layout(month time.Month, year int) []DayCell {
	first := NewDate(year, month, 1)
	last := LastOfMonth(first)

	cells := make([]DayCell, 0, GridCells)

	// Pad out the start of the month.
	lead := int(first.Weekday())
	for i := lead; i > 0; i-- {
		cells = append(cells, DayCell{Date: first.AddDays(-i)})
	}

	for d := first; !d.After(last); d = d.AddDays(1) {
		cells = append(cells, DayCell{Date: d, IsCurrentMonth: true})
	}

	for next := last.AddDays(1); len(cells) < GridCells; next = next.AddDays(1) {
		cells = append(cells, DayCell{Date: next})
	}
	return cells
}

func markToday(cells []DayCell, today Date) {
	if today.IsZero() {
		return
	}
	for i := range cells {
		if cells[i].IsCurrentMonth && cells[i].Date == today {
			cells[i].IsToday = true
		}
	}
}

type gridKey struct {
	year  int
	month time.Month
}

// Cache memoises grid layouts per (month, year). The today flag is applied
// to a fresh copy on every call so callers never share a slice.
type Cache struct {
	lru *lru.Cache[gridKey, []DayCell]
}

// NewCache returns a cache holding at most size months.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = 24
	}
	c, err := lru.New[gridKey, []DayCell](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Grid returns the same cells BuildGrid would.
func (c *Cache) Grid(month time.Month, year int, today Date) []DayCell {
	if c == nil || c.lru == nil {
		return BuildGrid(month, year, today)
	}
	first := NewDate(year, month, 1)
	key := gridKey{year: first.Year, month: first.Month}
	base, ok := c.lru.Get(key)
	if !ok {
		base = layout(first.Month, first.Year)
		c.lru.Add(key, base)
	}
	cells := make([]DayCell, len(base))
	copy(cells, base)
	markToday(cells, today)
	return cells
}
