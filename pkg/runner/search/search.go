// Package search runs journal searches from the command line, optionally
// re-running them whenever the store changes.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/printers"
	"tableflip.dev/daylog/pkg/search"
	"tableflip.dev/daylog/pkg/store"
)

type Search struct {
	App   *app.Service
	Query search.Query
	JSON  bool
	Watch bool

	// Render defaults to printing results to Out.
	Render func(results []search.Result) error
	Out    io.Writer
	Now    func() time.Time
}

func (s *Search) Do(ctx context.Context) error {
	if s.App == nil {
		return errors.New("search: no app service")
	}
	results, err := s.run(ctx)
	if err != nil {
		return err
	}
	if err := s.render(results); err != nil {
		return err
	}
	if !s.Watch {
		return nil
	}

	w, ok := s.App.Repo.(store.Watcher)
	if !ok {
		return errors.New("search: the configured backend cannot be watched")
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			if !s.relevant(evt) {
				continue
			}
			fresh, err := s.run(ctx)
			if err != nil {
				// Keep the previous results on screen.
				fmt.Fprintf(os.Stderr, "search: refresh failed: %v\n", err)
				continue
			}
			if err := s.render(fresh); err != nil {
				return err
			}
		}
	}
}

func (s *Search) relevant(evt store.Event) bool {
	if evt.UserID != "" && evt.UserID != s.App.UserID {
		return false
	}
	switch evt.Type {
	case store.EventEntriesChanged:
		return s.Query.Filters.Entries
	case store.EventGoalsChanged:
		return s.Query.Filters.Goals
	default:
		return true
	}
}

func (s *Search) run(ctx context.Context) ([]search.Result, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return s.App.Search(ctx, s.Query, now)
}

func (s *Search) render(results []search.Result) error {
	if s.Render != nil {
		return s.Render(results)
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}
	if s.JSON {
		b, err := json.Marshal(results)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Results(s.Query.Text, results)
	return nil
}
