package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/search"
	"tableflip.dev/daylog/pkg/stats"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const snippetWidth = 60

var (
	spacing = strings.Repeat(" ", len("6f1c2a1e  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+one)
	default:
		_, _ = c.Fprintln(pp.out(), " "+many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Results prints search results in pipeline order.
func (pp *PrettyPrint) Results(query string, results []search.Result) {
	pp.TitleWithCount(fmt.Sprintf("Search %q", query), len(results), "result", "results")
	if len(results) == 0 {
		pp.none()
		return
	}

	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = snippetWidth
	tbl.Wrap = true
	for _, r := range results {
		switch r.Kind {
		case search.KindEntry:
			e := r.Entry
			tbl.AddRow("📔", e.Date.String(), e.Mood.EmojiOr(), faint.Sprintf("%.0f", r.Score), entrySnippet(*e))
		case search.KindGoal:
			g := r.Goal
			tbl.AddRow("🎯", g.CreatedAt.Format("2006-01-02"), goalMark(*g), faint.Sprintf("%.0f", r.Score), goalSnippet(*g))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func entrySnippet(e journal.Entry) string {
	if text := strings.TrimSpace(e.Reflection); text != "" {
		return truncate(text, snippetWidth)
	}
	var notes []string
	for _, g := range e.Gratitude {
		if g != "" {
			notes = append(notes, g)
		}
	}
	return truncate(strings.Join(notes, " · "), snippetWidth)
}

func goalSnippet(g journal.Goal) string {
	text := g.Title
	if g.Description != "" {
		text += ": " + g.Description
	}
	return truncate(text, snippetWidth)
}

func goalMark(g journal.Goal) string {
	if g.Completed {
		return "✔"
	}
	return "•"
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// Entry prints a single day in full.
func (pp *PrettyPrint) Entry(e *journal.Entry) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	w := pp.out()

	pp.Title(fmt.Sprintf("%s %s", e.Date, e.Mood.EmojiOr()))
	if e.Mood != "" {
		_, _ = faint.Fprintf(w, "mood: %s\n", e.Mood)
	}

	if len(e.Habits) > 0 {
		_, _ = bold.Fprintf(w, "Habits %d/%d (%.0f%%)\n", len(e.CompletedHabits()), len(e.Habits), stats.HabitsProgress(e.Habits))
		names := make([]string, 0, len(e.Habits))
		for name := range e.Habits {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check(e.Habits[name]), name)
		}
	}

	if len(e.Checklist.TaskText) > 0 {
		_, _ = bold.Fprintln(w, "Checklist")
		keys := make([]string, 0, len(e.Checklist.TaskText))
		for k := range e.Checklist.TaskText {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check(e.Checklist.Checkboxes[k]), e.Checklist.TaskText[k])
		}
	}

	if e.HasGratitude() {
		_, _ = bold.Fprintln(w, "Grateful for")
		for i, g := range e.Gratitude {
			if g != "" {
				_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, g)
			}
		}
	}

	if e.Reflection != "" {
		_, _ = bold.Fprintln(w, "Reflection")
		_, _ = fmt.Fprintf(w, "  %s\n", e.Reflection)
	}
	pp.NewLine()
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Goals prints the goal list with progress.
func (pp *PrettyPrint) Goals(goals []journal.Goal) {
	pp.TitleWithCount("Goals", len(goals), "goal", "goals")
	if len(goals) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = snippetWidth
	for _, g := range goals {
		title := g.Title
		if g.Completed {
			title = done.Sprint(title)
		}
		row := []interface{}{goalMark(g), title, string(g.Category), string(g.Priority), progress(g), deadline(g)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(shortID(g.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func shortID(id string) string {
	if len(id) > len(spacing)-2 {
		return id[:len(spacing)-2]
	}
	return id
}

func progress(g journal.Goal) string {
	pct, ok := stats.GoalProgress(g)
	if !ok {
		return ""
	}
	bar := progressBar(pct, 10)
	if g.Unit != "" {
		return fmt.Sprintf("%s %3.0f%% (%s/%s %s)", bar, pct, g.CurrentValue, g.TargetValue, g.Unit)
	}
	return fmt.Sprintf("%s %3.0f%% (%s/%s)", bar, pct, g.CurrentValue, g.TargetValue)
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func deadline(g journal.Goal) string {
	if g.Deadline == nil {
		return ""
	}
	return "due " + g.Deadline.String()
}

// GoalSummary prints the aggregate goal counts.
func (pp *PrettyPrint) GoalSummary(s stats.GoalSummary) {
	pp.Title("Goal summary")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("total", s.Total)
	tbl.AddRow("completed", s.Completed)
	tbl.AddRow("average progress", fmt.Sprintf("%.0f%%", s.AverageProgress))
	for _, c := range journal.AllCategories() {
		if n := s.ByCategory[c]; n > 0 {
			tbl.AddRow("  "+string(c), n)
		}
	}
	for _, p := range journal.AllPriorities() {
		if n := s.ByPriority[p]; n > 0 {
			tbl.AddRow("  "+string(p)+" priority", n)
		}
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Overview prints the month summary block.
func (pp *PrettyPrint) Overview(o stats.Overview) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("entries", o.Entries)
	tbl.AddRow("full habit days", o.FullHabitDays)
	if o.HasAverage {
		tbl.AddRow("average mood", fmt.Sprintf("%s %s", o.AverageMood.Emoji(), o.AverageMood))
	} else {
		tbl.AddRow("average mood", "-")
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Report prints a date-window report.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("%s → %s", r.Since, r.Until), len(r.Days), "entry", "entries")
	if len(r.Days) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, d := range r.Days {
		tbl.AddRow(d.Date.String(), d.Mood.EmojiOr(), progressBar(d.HabitsProgress, 10), fmt.Sprintf("%d/%d grateful", d.Gratitude, journal.GratitudeSlots))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if len(r.Habits) > 0 {
		pp.Title("Habits")
		ht := uitable.New()
		ht.Separator = "  "
		for _, h := range r.Habits {
			ht.AddRow(h.Name, fmt.Sprintf("%d/%d", h.Done, h.Total))
		}
		ht.RightAlign(1)
		_, _ = fmt.Fprintln(pp.out(), ht)
		pp.NewLine()
	}
	pp.Overview(r.Overview)
}
