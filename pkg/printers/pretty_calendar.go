package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/glyph"
)

// MonthOptions controls the styling of the rendered month.
type MonthOptions struct {
	HeaderStyle  lipgloss.Style
	PaddingStyle lipgloss.Style
	TodayStyle   lipgloss.Style
	// Colored paints each current-month day with its legend color.
	Colored    bool
	ShowHeader bool
	ShowMoods  bool
}

// DefaultMonthOptions returns the styles used by the calendar command.
func DefaultMonthOptions() MonthOptions {
	return MonthOptions{
		HeaderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		PaddingStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		TodayStyle:   lipgloss.NewStyle().Underline(true).Bold(true),
		Colored:      true,
		ShowHeader:   true,
		ShowMoods:    true,
	}
}

const width = len("Su Mo Tu We Th Fr Sa")

// Month prints the month grid, the color legend and the overview.
func (pp *PrettyPrint) Month(view app.MonthView, opts MonthOptions) {
	_, _ = fmt.Fprintln(pp.out(), RenderMonth(view, opts))
	pp.NewLine()
	_, _ = fmt.Fprintln(pp.out(), RenderLegend(opts))
	pp.NewLine()
	pp.Overview(view.Overview)
}

// RenderMonth produces the six-week grid. Days from neighbouring months are
// shown in the padding style; journaled days take their legend color.
func RenderMonth(view app.MonthView, opts MonthOptions) string {
	var lines []string

	title := fmt.Sprintf("%s %d", view.Month, view.Year)
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	lines = append(lines, opts.HeaderStyle.Render(strings.Repeat(" ", mid)+title))
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	for row := 0; row*7 < len(view.Days); row++ {
		end := row*7 + 7
		if end > len(view.Days) {
			end = len(view.Days)
		}
		week := view.Days[row*7 : end]

		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, renderDay(d, opts))
		}
		line := strings.Join(cells, " ")
		if opts.ShowMoods {
			if moods := weekMoods(week); moods != "" {
				line += "  " + moods
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderDay(d app.MonthDay, opts MonthOptions) string {
	label := fmt.Sprintf("%2d", d.Date.Day)
	if !d.IsCurrentMonth {
		return opts.PaddingStyle.Render(label)
	}
	style := lipgloss.NewStyle()
	if opts.Colored {
		style = style.Foreground(lipgloss.Color(d.Legend.Color))
	}
	if d.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	return style.Render(label)
}

// weekMoods lists the mood emoji of the week's journaled days.
func weekMoods(week []app.MonthDay) string {
	var moods []string
	for _, d := range week {
		if d.IsCurrentMonth && d.Emoji != "" {
			moods = append(moods, d.Emoji)
		}
	}
	return strings.Join(moods, "")
}

// RenderLegend renders one swatch per habit-progress bucket.
func RenderLegend(opts MonthOptions) string {
	items := make([]string, 0, len(glyph.DefaultLegend()))
	for _, l := range glyph.DefaultLegend() {
		swatch := "■"
		if opts.Colored {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render(swatch)
		}
		items = append(items, fmt.Sprintf("%s %s", swatch, legendLabel(l)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func legendLabel(l glyph.Legend) string {
	switch {
	case l == glyph.NoEntryLegend:
		return l.Label
	case l.Min >= 100:
		return "all habits"
	default:
		return fmt.Sprintf("%.0f%%+ habits", l.Min)
	}
}
