package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/search"
)

// Search fetches the records matching q.Text and runs them through the
// search pipeline. Only the enabled kinds are fetched. A retrieval error is
// returned as is, without partial results.
func (s *Service) Search(ctx context.Context, q search.Query, now time.Time) ([]search.Result, error) {
	if q.Blank() {
		return []search.Result{}, nil
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(q.Text)

	var (
		entries []journal.Entry
		goals   []journal.Goal
		err     error
	)
	if q.Filters.Entries {
		entries, err = s.Repo.SearchEntries(ctx, s.UserID, text)
		if err != nil {
			return nil, fmt.Errorf("app: search entries: %w", err)
		}
	}
	if q.Filters.Goals {
		goals, err = s.Repo.SearchGoals(ctx, s.UserID, text)
		if err != nil {
			return nil, fmt.Errorf("app: search goals: %w", err)
		}
	}
	return search.Run(q, entries, goals, now), nil
}
