package options

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// MonthOptions picks the month shown by calendar views.
type MonthOptions struct {
	Month int
	Year  int
	Plain bool
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().IntVar(&o.Month, "month", 0,
		"Month number 1-12, defaults to the current month.")
	cmd.Flags().IntVar(&o.Year, "year", 0,
		"Year, defaults to the current year.")
	cmd.Flags().BoolVar(&o.Plain, "plain", false,
		"Do not color days by habit progress.")
}

// Resolve applies positional [month [year]] arguments over the flags and
// fills the gaps from now.
func (o *MonthOptions) Resolve(args []string, now time.Time) (time.Month, int, error) {
	month, year := o.Month, o.Year
	if len(args) > 0 {
		m, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid month %q", args[0])
		}
		month = m
	}
	if len(args) > 1 {
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", args[1])
		}
		year = y
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year == 0 {
		year = now.Year()
	}
	return time.Month(month), year, nil
}
