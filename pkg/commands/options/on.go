package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/calendar"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the day an entry belongs to.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-2-28" or --on="2/28". Defaults to today.`)
}

// GetOn resolves the flag relative to now.
func (o *OnOptions) GetOn(now time.Time) (calendar.Date, error) {
	today := calendar.DateOf(now)
	if o.OnString == "" {
		return today, nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err == nil {
		return calendar.DateOf(t), nil
	}
	// Let the year be the same.
	t, err = time.Parse(layoutISOShort, o.OnString)
	if err != nil {
		return calendar.Date{}, err
	}
	d := calendar.NewDate(today.Year, t.Month(), t.Day())
	// Journaling looks back: 12/30 typed on 1/3 means last year.
	if d.After(today) {
		d = calendar.NewDate(today.Year-1, t.Month(), t.Day())
	}
	return d, nil
}
