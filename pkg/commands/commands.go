package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daylog",
		Short: base.Wrap80("Daily journaling, habits and goals on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&output.JSON, "json", false, "Output as JSON.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSearch(topLevel)
	addCalendar(topLevel)
	addEntry(topLevel)
	addGoal(topLevel)
	addStats(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// loadService opens the configured store and wraps it for the current user.
// Callers close the returned service's repository.
func loadService() (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	repo, err := store.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store at %s: %w", cfg.Backend(), cfg.BasePath(), err)
	}
	grids, err := calendar.NewCache(0)
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return &app.Service{Repo: repo, UserID: cfg.UserID(), Grids: grids}, cfg, nil
}
