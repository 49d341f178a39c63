// Package key provides CLI helpers to display the journaling legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/printers"
)

// Key prints the mood glyphs and the calendar color legend.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

// Do renders the mood and legend keys.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")

	k.Moods(ctx, out, glyph.DefaultMoods())
	_, _ = fmt.Fprintln(out, "")

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(out, "Calendar colors")
	_, _ = fmt.Fprintln(out, printers.RenderLegend(printers.DefaultMonthOptions()))

	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Moods renders the mood table, best first.
func (k *Key) Moods(_ context.Context, out io.Writer, moods []glyph.MoodGlyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mood"), bold.Sprint("Meaning"), bold.Sprint("Score"))
	for _, m := range moods {
		tbl.AddRow(m.Emoji, string(m.Mood), m.Score)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
