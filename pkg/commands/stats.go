package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/printers"
)

func addStats(topLevel *cobra.Command) {
	var since, until string

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"report"},
		Short:   "Summarise moods, habits and goals",
		Long: `Stats reports the journaled days between --since and --until (the last
30 days by default) with per-habit tallies, followed by the goal summary.`,
		Example: `
daylog stats
daylog stats --since 2024-01-01 --until 2024-03-31 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			today := calendar.DateOf(time.Now())
			from, to := today.AddDays(-29), today
			var err error
			if since != "" {
				if from, err = calendar.ParseDate(since); err != nil {
					return output.HandleError(err)
				}
			}
			if until != "" {
				if to, err = calendar.ParseDate(until); err != nil {
					return output.HandleError(err)
				}
			}

			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			ctx := context.Background()
			report, err := svc.Report(ctx, from, to)
			if err != nil {
				return output.HandleError(err)
			}
			goals, err := svc.GoalSummary(ctx)
			if err != nil {
				return output.HandleError(err)
			}

			if output.JSON {
				return output.PrintJSON(map[string]interface{}{
					"report": report,
					"goals":  goals,
				})
			}
			pp := printers.PrettyPrint{}
			pp.NewLine()
			pp.Report(report)
			pp.GoalSummary(goals)
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "First day to include, YYYY-MM-DD.")
	cmd.Flags().StringVar(&until, "until", "", "Last day to include, YYYY-MM-DD.")
	topLevel.AddCommand(cmd)
}
