// Package store provides the data access layer for entries and goals.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/journal"
)

// ErrNotFound is returned when a requested entry or goal does not exist.
var ErrNotFound = errors.New("store: not found")

// Repository is the persistence contract consumed by the app service.
// Search methods match the query as a case-insensitive substring of the
// free-text fields: reflection and gratitude notes for entries, title and
// description for goals.
type Repository interface {
	SearchEntries(ctx context.Context, userID, query string) ([]journal.Entry, error)
	SearchGoals(ctx context.Context, userID, query string) ([]journal.Goal, error)
	EntriesBetween(ctx context.Context, userID string, from, to calendar.Date) ([]journal.Entry, error)
	Entry(ctx context.Context, userID string, date calendar.Date) (*journal.Entry, error)
	UpsertEntry(ctx context.Context, e *journal.Entry) error
	Goals(ctx context.Context, userID string) ([]journal.Goal, error)
	Goal(ctx context.Context, userID, id string) (*journal.Goal, error)
	SaveGoal(ctx context.Context, g *journal.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error
	Close() error
}

// Watcher is implemented by repositories that can report changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Backend names a Repository implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend converts a string to a Backend. Empty input means diskv.
func ParseBackend(raw string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(raw))); b {
	case "":
		return BackendDiskv, nil
	case BackendDiskv, BackendSQLite:
		return b, nil
	default:
		return BackendDiskv, fmt.Errorf("store: unknown backend %q", raw)
	}
}

// Open creates the Repository selected by cfg. A nil cfg loads the config
// from viper.
func Open(cfg Config) (Repository, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Backend() {
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendDiskv, "":
		return Load(cfg)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("store: user id required")
	}
	return nil
}
