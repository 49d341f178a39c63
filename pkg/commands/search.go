package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	so := &options.SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search reflections, gratitude notes and goals",
		Long: `Search matches the text, ignoring case, against entry reflections and
gratitude notes and against goal titles and descriptions.

Relevance weighs the length of the matched fields: 0.1 per reflection
character and 0.05 per gratitude character for entries, 0.2 per title
character and 0.1 per description character for goals.`,
		Example: `
daylog search grateful
daylog search run --goals=false --range month --sort mood
daylog search "deep work" --watch
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			q, err := so.Query(args)
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			s := search.Search{
				App:   svc,
				Query: q,
				JSON:  output.JSON,
				Watch: so.Watch,
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	options.AddSearchArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
