package search

import (
	"sort"
	"time"
	"unicode/utf8"

	"tableflip.dev/daylog/pkg/journal"
)

// Kind tags a result as an entry or a goal.
type Kind string

const (
	KindEntry Kind = "entry"
	KindGoal  Kind = "goal"
)

// Result is one matched record. Exactly one of Entry and Goal is set,
// according to Kind.
type Result struct {
	Kind      Kind           `json:"type"`
	Entry     *journal.Entry `json:"entry,omitempty"`
	Goal      *journal.Goal  `json:"goal,omitempty"`
	Score     float64        `json:"relevanceScore"`
	MatchedAt time.Time      `json:"matchedAt"`
}

// Run filters, scores and sorts records that the repository already matched
// against q.Text. A blank query yields no results. The inputs are not
// modified; results hold copies.
func Run(q Query, entries []journal.Entry, goals []journal.Goal, now time.Time) []Result {
	if q.Blank() {
		return []Result{}
	}

	results := collect(q.Filters, entries, goals, now.Location())
	results = filterRange(results, q.Range, now)
	for i := range results {
		results[i].Score = score(results[i])
	}
	sortResults(results, q.SortBy)
	return results
}

func collect(f Filters, entries []journal.Entry, goals []journal.Goal, loc *time.Location) []Result {
	results := make([]Result, 0, len(entries)+len(goals))
	if f.Entries {
		for _, e := range entries {
			c := e.Clone()
			r := Result{Kind: KindEntry, Entry: &c}
			if !c.Date.IsZero() {
				r.MatchedAt = c.Date.Time(loc)
			}
			results = append(results, r)
		}
	}
	if f.Goals {
		for _, g := range goals {
			c := g.Clone()
			results = append(results, Result{Kind: KindGoal, Goal: &c, MatchedAt: c.CreatedAt.Time})
		}
	}
	return results
}

// filterRange keeps results strictly after the start of the range. Records
// without a date cannot be placed in a range and are dropped.
func filterRange(results []Result, r DateRange, now time.Time) []Result {
	start, ok := r.Start(now)
	if !ok {
		return results
	}
	kept := results[:0]
	for _, res := range results {
		if res.MatchedAt.IsZero() {
			continue
		}
		if res.MatchedAt.After(start) {
			kept = append(kept, res)
		}
	}
	return kept
}

// score weights the length of the matched free-text fields.
func score(r Result) float64 {
	switch {
	case r.Kind == KindEntry && r.Entry != nil:
		s := 0.1 * float64(utf8.RuneCountInString(r.Entry.Reflection))
		for _, g := range r.Entry.Gratitude {
			s += 0.05 * float64(utf8.RuneCountInString(g))
		}
		return s
	case r.Kind == KindGoal && r.Goal != nil:
		return 0.2*float64(utf8.RuneCountInString(r.Goal.Title)) +
			0.1*float64(utf8.RuneCountInString(r.Goal.Description))
	}
	return 0
}

func sortResults(results []Result, by SortBy) {
	switch by {
	case SortDate:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := results[i].MatchedAt, results[j].MatchedAt
			if a.IsZero() || b.IsZero() {
				return !a.IsZero() && b.IsZero()
			}
			return a.After(b)
		})
	case SortMood:
		sortByMood(results)
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}
}

// sortByMood reorders entries among the slots entries already occupy, best
// mood first. Goals stay where they are.
func sortByMood(results []Result) {
	slots := make([]int, 0, len(results))
	entries := make([]Result, 0, len(results))
	for i, r := range results {
		if r.Kind == KindEntry {
			slots = append(slots, i)
			entries = append(entries, r)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return moodScore(entries[i]) > moodScore(entries[j])
	})
	for k, i := range slots {
		results[i] = entries[k]
	}
}

func moodScore(r Result) int {
	if r.Entry == nil {
		return 0
	}
	return r.Entry.Mood.Score()
}
