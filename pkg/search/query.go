// Package search filters, scores and orders journal entries and goals.
package search

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daylog/pkg/timeutil"
)

// DateRange limits results to a recent calendar period.
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeYear  DateRange = "year"
)

// AllRanges returns the ranges, widest first.
func AllRanges() []DateRange {
	return []DateRange{RangeAll, RangeYear, RangeMonth, RangeWeek}
}

// ParseDateRange converts a string to a DateRange. Empty input means all.
func ParseDateRange(raw string) (DateRange, error) {
	r := DateRange(strings.ToLower(strings.TrimSpace(raw)))
	if r == "" {
		return RangeAll, nil
	}
	for _, candidate := range AllRanges() {
		if candidate == r {
			return candidate, nil
		}
	}
	return RangeAll, fmt.Errorf("search: unknown date range %q", raw)
}

// Start returns the instant results must be strictly after. ok is false for
// RangeAll, which does not filter.
func (r DateRange) Start(now time.Time) (start time.Time, ok bool) {
	switch r {
	case RangeWeek:
		return timeutil.StartOfWeek(now), true
	case RangeMonth:
		return timeutil.StartOfMonth(now), true
	case RangeYear:
		return timeutil.StartOfYear(now), true
	default:
		return time.Time{}, false
	}
}

// SortBy selects the result ordering.
type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortMood      SortBy = "mood"
)

// AllSorts returns the sort modes.
func AllSorts() []SortBy {
	return []SortBy{SortRelevance, SortDate, SortMood}
}

// ParseSortBy converts a string to a SortBy. Empty input means relevance.
func ParseSortBy(raw string) (SortBy, error) {
	s := SortBy(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return SortRelevance, nil
	}
	for _, candidate := range AllSorts() {
		if candidate == s {
			return candidate, nil
		}
	}
	return SortRelevance, fmt.Errorf("search: unknown sort %q", raw)
}

// Filters toggles the kinds of record included in results.
type Filters struct {
	Entries bool `json:"entries"`
	Goals   bool `json:"goals"`
}

// AllKinds includes both entries and goals.
var AllKinds = Filters{Entries: true, Goals: true}

// Query describes one search invocation.
type Query struct {
	Text    string    `json:"query"`
	Filters Filters   `json:"filters"`
	Range   DateRange `json:"dateRange"`
	SortBy  SortBy    `json:"sortBy"`
}

// Blank reports whether the query has no text to search for.
func (q Query) Blank() bool {
	return strings.TrimSpace(q.Text) == ""
}
