package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/stats"
	"tableflip.dev/daylog/pkg/store"
)

// Service provides high-level operations for entries and goals.
// It wraps the repository and the pure search/calendar/stats packages so
// the CLI and the MCP server share logic.
type Service struct {
	Repo   store.Repository
	UserID string
	// Grids caches month layouts; nil builds every grid from scratch.
	Grids *calendar.Cache
}

var (
	ErrNoRepository = errors.New("app: no repository configured")
	ErrNoUser       = errors.New("app: no user configured")
)

func (s *Service) ready() error {
	if s.Repo == nil {
		return ErrNoRepository
	}
	if strings.TrimSpace(s.UserID) == "" {
		return ErrNoUser
	}
	return nil
}

// Entry returns the entry for date, or store.ErrNotFound.
func (s *Service) Entry(ctx context.Context, date calendar.Date) (*journal.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.Entry(ctx, s.UserID, date)
}

// SaveEntry upserts the day's entry. CreatedAt is kept from the stored
// entry when there is one; UpdatedAt is always set to now.
func (s *Service) SaveEntry(ctx context.Context, e *journal.Entry, now time.Time) (*journal.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New("app: nil entry")
	}
	if e.Date.IsZero() {
		return nil, errors.New("app: entry date required")
	}
	if e.Mood != glyph.NoMood && !e.Mood.Valid() {
		return nil, fmt.Errorf("app: unknown mood %q", e.Mood)
	}
	e.UserID = s.UserID

	existing, err := s.Repo.Entry(ctx, s.UserID, e.Date)
	switch {
	case err == nil:
		e.CreatedAt = existing.CreatedAt
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, fmt.Errorf("app: load entry: %w", err)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = journal.Timestamp{Time: now}
	}
	e.UpdatedAt = journal.Timestamp{Time: now}

	if err := s.Repo.UpsertEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("app: save entry: %w", err)
	}
	return e, nil
}

// EditEntry loads the day's entry (or starts a blank one), applies edit
// and saves the result.
func (s *Service) EditEntry(ctx context.Context, date calendar.Date, now time.Time, edit func(e *journal.Entry) error) (*journal.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.Repo.Entry(ctx, s.UserID, date)
	if errors.Is(err, store.ErrNotFound) {
		e, err = journal.New(s.UserID, date), nil
	}
	if err != nil {
		return nil, fmt.Errorf("app: load entry: %w", err)
	}
	if err := edit(e); err != nil {
		return nil, err
	}
	return s.SaveEntry(ctx, e, now)
}

// Goals lists the user's goals, oldest first.
func (s *Service) Goals(ctx context.Context) ([]journal.Goal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.Goals(ctx, s.UserID)
}

// GoalInput carries the user-editable fields of a new goal.
type GoalInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Deadline    *calendar.Date
	Target      journal.Quantity
	Unit        string
}

// AddGoal validates input and stores a new goal.
func (s *Service) AddGoal(ctx context.Context, in GoalInput, now time.Time) (*journal.Goal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("app: goal title required")
	}
	category, err := journal.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	priority, err := journal.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if in.Target < 0 {
		return nil, errors.New("app: goal target cannot be negative")
	}
	g := &journal.Goal{
		ID:          uuid.NewString(),
		UserID:      s.UserID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Priority:    priority,
		Deadline:    in.Deadline,
		TargetValue: in.Target,
		Unit:        strings.TrimSpace(in.Unit),
		CreatedAt:   journal.Timestamp{Time: now},
	}
	if err := s.Repo.SaveGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("app: save goal: %w", err)
	}
	return g, nil
}

func (s *Service) updateGoal(ctx context.Context, id string, update func(g *journal.Goal)) (*journal.Goal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.Repo.Goal(ctx, s.UserID, id)
	if err != nil {
		return nil, err
	}
	update(g)
	if err := s.Repo.SaveGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("app: save goal: %w", err)
	}
	return g, nil
}

// SetGoalProgress records the current value of a goal.
func (s *Service) SetGoalProgress(ctx context.Context, id string, value journal.Quantity) (*journal.Goal, error) {
	return s.updateGoal(ctx, id, func(g *journal.Goal) {
		g.CurrentValue = value
	})
}

// CompleteGoal marks a goal done, or reopens it when done is false.
func (s *Service) CompleteGoal(ctx context.Context, id string, done bool) (*journal.Goal, error) {
	return s.updateGoal(ctx, id, func(g *journal.Goal) {
		g.Completed = done
	})
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Repo.DeleteGoal(ctx, s.UserID, id)
}

// GoalSummary aggregates all of the user's goals.
func (s *Service) GoalSummary(ctx context.Context) (stats.GoalSummary, error) {
	goals, err := s.Goals(ctx)
	if err != nil {
		return stats.GoalSummary{}, err
	}
	return stats.SummarizeGoals(goals), nil
}
