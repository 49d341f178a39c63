package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/store"
)

type Info struct {
	Config store.Config
	Repo   store.Repository
}

func (n *Info) Do(ctx context.Context) error {

	if override := os.Getenv("DAYLOG_CONFIG_PATH"); override != "" {
		fmt.Println("DAYLOG_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("DAYLOG_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.path:    ", n.Config.BasePath())
	fmt.Println("Config.backend: ", n.Config.Backend())
	fmt.Println("Config.user:    ", n.Config.UserID())

	if n.Repo == nil {
		return fmt.Errorf("failed to open the %s store", n.Config.Backend())
	}

	entries, err := n.Repo.EntriesBetween(ctx, n.Config.UserID(), calendar.NewDate(1, 1, 1), calendar.NewDate(9999, 12, 31))
	if err != nil {
		return err
	}
	goals, err := n.Repo.Goals(ctx, n.Config.UserID())
	if err != nil {
		return err
	}

	fmt.Printf("Entries: %d\n", len(entries))
	if len(entries) > 0 {
		fmt.Printf("  first %s, last %s\n", entries[0].Date, entries[len(entries)-1].Date)
	}
	fmt.Printf("Goals:   %d\n", len(goals))

	return nil
}
