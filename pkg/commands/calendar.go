package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/printers"
)

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "calendar [month] [year]",
		Aliases: []string{"cal"},
		Short:   "Show a month colored by habit progress",
		Example: `
daylog calendar
daylog calendar 2 2024
daylog cal --month 12 --json
`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			month, year, err := mo.Resolve(args, now)
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			view, err := svc.MonthView(context.Background(), month, year, calendar.DateOf(now))
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.PrintJSON(view)
			}

			opts := printers.DefaultMonthOptions()
			opts.Colored = !mo.Plain
			pp := printers.PrettyPrint{}
			pp.NewLine()
			pp.Month(view, opts)
			return nil
		},
	}

	options.AddMonthArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
