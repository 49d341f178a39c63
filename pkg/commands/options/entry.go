package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
)

// EntryOptions carries edits to a daily entry. Unset flags leave the stored
// values alone.
type EntryOptions struct {
	Mood       string
	Reflection string
	Gratitude  []string
	Done       []string
	Missed     []string
	Tasks      []string
	Check      []string

	reflectionSet bool
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Mood for the day: excellent, good, neutral, bad or terrible.")
	cmd.Flags().StringVarP(&o.Reflection, "reflection", "r", "",
		"Free-text reflection, replaces any stored one.")
	cmd.Flags().StringArrayVarP(&o.Gratitude, "grateful", "g", nil,
		fmt.Sprintf("Something you are grateful for, up to %d times.", journal.GratitudeSlots))
	cmd.Flags().StringSliceVar(&o.Done, "done", nil,
		"Habits completed today.")
	cmd.Flags().StringSliceVar(&o.Missed, "missed", nil,
		"Habits tracked but not completed today.")
	cmd.Flags().StringArrayVar(&o.Tasks, "task", nil,
		"Add a checklist task.")
	cmd.Flags().StringSliceVar(&o.Check, "check", nil,
		"Check off tasks by key.")

	_ = cmd.RegisterFlagCompletionFunc("mood", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(glyph.DefaultMoods()))
		for _, m := range glyph.DefaultMoods() {
			out = append(out, string(m.Mood))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// Capture records which optional flags were given; call it from PreRunE.
func (o *EntryOptions) Capture(cmd *cobra.Command) {
	o.reflectionSet = cmd.Flags().Changed("reflection")
}

// Apply merges the options into e.
func (o *EntryOptions) Apply(e *journal.Entry) error {
	if o.Mood != "" {
		m, err := glyph.ParseMood(o.Mood)
		if err != nil {
			return err
		}
		e.Mood = m
	}
	if o.reflectionSet || o.Reflection != "" {
		e.Reflection = strings.TrimSpace(o.Reflection)
	}
	if len(o.Gratitude) > journal.GratitudeSlots {
		return fmt.Errorf("at most %d gratitude notes", journal.GratitudeSlots)
	}
	if len(o.Gratitude) > 0 {
		e.Gratitude = [journal.GratitudeSlots]string{}
		copy(e.Gratitude[:], o.Gratitude)
	}

	if e.Habits == nil && len(o.Done)+len(o.Missed) > 0 {
		e.Habits = map[string]bool{}
	}
	for _, h := range o.Missed {
		e.Habits[strings.TrimSpace(h)] = false
	}
	for _, h := range o.Done {
		e.Habits[strings.TrimSpace(h)] = true
	}

	if len(o.Tasks) > 0 {
		if e.Checklist.TaskText == nil {
			e.Checklist.TaskText = map[string]string{}
		}
		if e.Checklist.Checkboxes == nil {
			e.Checklist.Checkboxes = map[string]bool{}
		}
		for _, text := range o.Tasks {
			key := nextTaskKey(e.Checklist.TaskText)
			e.Checklist.TaskText[key] = strings.TrimSpace(text)
			e.Checklist.Checkboxes[key] = false
		}
	}
	for _, key := range o.Check {
		if _, ok := e.Checklist.TaskText[key]; !ok {
			return fmt.Errorf("no task %q on this day", key)
		}
		if e.Checklist.Checkboxes == nil {
			e.Checklist.Checkboxes = map[string]bool{}
		}
		e.Checklist.Checkboxes[key] = true
	}
	return nil
}

func nextTaskKey(existing map[string]string) string {
	for i := 1; ; i++ {
		key := fmt.Sprintf("task%d", i)
		if _, ok := existing[key]; !ok {
			return key
		}
	}
}
