package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
	"tableflip.dev/daylog/pkg/store"
)

func addEntry(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Write or read a daily entry",
	}

	addEntryAdd(cmd)
	addEntryShow(cmd)

	topLevel.AddCommand(cmd)
}

func addEntryAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"log", "edit"},
		Short:   "Create or update the entry for a day",
		Long: `Add merges the given fields into the day's entry, creating it when
there is none. Fields that are not given keep their stored values.`,
		Example: `
daylog entry add --mood good --done read,walk --missed run -g "coffee" -g "friends"
daylog entry add --on 3/14 -r "Long day, good talk with Sam."
daylog entry add --task "call the bank" --check task1
`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			eo.Capture(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			date, err := on.GetOn(now)
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			e, err := svc.EditEntry(context.Background(), date, now, eo.Apply)
			if err != nil {
				return output.HandleError(err)
			}
			return printEntry(e)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddEntryArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}

func addEntryShow(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the entry for a day",
		Example: `
daylog entry show
daylog entry show --on 2024-3-14 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			date, err := on.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			e, err := svc.Entry(context.Background(), date)
			if errors.Is(err, store.ErrNotFound) {
				err = fmt.Errorf("no entry for %s", date)
			}
			if err != nil {
				return output.HandleError(err)
			}
			return printEntry(e)
		},
	}

	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}

func printEntry(e *journal.Entry) error {
	if output.JSON {
		return output.PrintJSON(e)
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Entry(e)
	return nil
}
