package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Track goals and their progress",
	}

	addGoalAdd(cmd)
	addGoalList(cmd)
	addGoalProgress(cmd)
	addGoalComplete(cmd, "complete", true)
	addGoalComplete(cmd, "reopen", false)
	addGoalDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addGoalAdd(topLevel *cobra.Command) {
	gop := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Example: `
daylog goal add "Read 12 books" -c learning -p high --target 12 --unit books
daylog goal add "Run a 10k" --deadline 2024-10-01
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			deadline, err := gop.GetDeadline()
			if err != nil {
				return output.HandleError(err)
			}
			target, err := gop.GetTarget()
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			g, err := svc.AddGoal(context.Background(), app.GoalInput{
				Title:       strings.Join(args, " "),
				Description: gop.Description,
				Category:    gop.Category,
				Priority:    gop.Priority,
				Deadline:    deadline,
				Target:      target,
				Unit:        gop.Unit,
			}, time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return printGoal(g)
		},
	}

	options.AddGoalArgs(cmd, gop)

	topLevel.AddCommand(cmd)
}

func addGoalList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var open bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals with progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			goals, err := svc.Goals(context.Background())
			if err != nil {
				return output.HandleError(err)
			}
			if open {
				kept := goals[:0]
				for _, g := range goals {
					if !g.Completed {
						kept = append(kept, g)
					}
				}
				goals = kept
			}
			if output.JSON {
				return output.PrintJSON(goals)
			}
			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.NewLine()
			pp.Goals(goals)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&open, "open", false, "Hide completed goals.")

	topLevel.AddCommand(cmd)
}

func addGoalProgress(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "progress <id> <value>",
		Short: "Record the current value of a goal",
		Example: `
daylog goal progress 6f1c2a1e 4
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: goalCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			value, err := journal.ParseQuantity(args[1])
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			ctx := context.Background()
			id, err := resolveGoalID(ctx, svc, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			g, err := svc.SetGoalProgress(ctx, id, value)
			if err != nil {
				return output.HandleError(err)
			}
			return printGoal(g)
		},
	}

	topLevel.AddCommand(cmd)
}

func addGoalComplete(topLevel *cobra.Command, use string, done bool) {
	short := "Mark a goal as completed"
	if !done {
		short = "Reopen a completed goal"
	}
	cmd := &cobra.Command{
		Use:               use + " <id>",
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: goalCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			ctx := context.Background()
			id, err := resolveGoalID(ctx, svc, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			g, err := svc.CompleteGoal(ctx, id, done)
			if err != nil {
				return output.HandleError(err)
			}
			return printGoal(g)
		},
	}

	topLevel.AddCommand(cmd)
}

func addGoalDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <id>",
		Aliases:           []string{"rm"},
		Short:             "Delete a goal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: goalCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			ctx := context.Background()
			id, err := resolveGoalID(ctx, svc, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			if err := svc.DeleteGoal(ctx, id); err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.PrintJSON(map[string]string{"deleted": id})
			}
			fmt.Printf("deleted %s\n", id)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// resolveGoalID expands a unique id prefix, as printed by --show-id.
func resolveGoalID(ctx context.Context, svc *app.Service, prefix string) (string, error) {
	goals, err := svc.Goals(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, g := range goals {
		if g.ID == prefix {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, prefix) {
			matches = append(matches, g.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no goal with id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("goal id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func printGoal(g *journal.Goal) error {
	if output.JSON {
		return output.PrintJSON(g)
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Goals([]journal.Goal{*g})
	return nil
}
