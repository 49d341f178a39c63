// Package mcp provides the Model Context Protocol server integration for daylog.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/daylog/pkg/app"
	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/search"
	"tableflip.dev/daylog/pkg/stats"
)

// Service adapts the app service for MCP tools and resources.
type Service struct {
	App *app.Service
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewService builds a service wrapper around the app service.
func NewService(a *app.Service) *Service {
	return &Service{App: a, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("mcp: app service is not configured")
	}
	return nil
}

// SearchOptions captures the search tool arguments.
type SearchOptions struct {
	Query  string
	Kinds  string
	Range  string
	SortBy string
	Limit  int
}

// ResultDTO is a transport-friendly projection of a search result.
type ResultDTO struct {
	Type      string    `json:"type"`
	Score     float64   `json:"relevanceScore"`
	MatchedAt string    `json:"matchedAt,omitempty"`
	Entry     *EntryDTO `json:"entry,omitempty"`
	Goal      *GoalDTO  `json:"goal,omitempty"`
}

// EntryDTO is a transport-friendly projection of a daily entry.
type EntryDTO struct {
	Date           string          `json:"date"`
	Mood           string          `json:"mood,omitempty"`
	MoodEmoji      string          `json:"moodEmoji,omitempty"`
	Habits         map[string]bool `json:"habits,omitempty"`
	HabitsProgress float64         `json:"habitsProgress"`
	Tasks          []TaskDTO       `json:"tasks,omitempty"`
	Gratitude      []string        `json:"gratitude,omitempty"`
	Reflection     string          `json:"reflection,omitempty"`
	Created        string          `json:"created,omitempty"`
	Updated        string          `json:"updated,omitempty"`
}

// TaskDTO is one checklist line.
type TaskDTO struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// GoalDTO is a transport-friendly projection of a goal.
type GoalDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Deadline    string   `json:"deadline,omitempty"`
	Target      float64  `json:"targetValue"`
	Current     float64  `json:"currentValue"`
	Unit        string   `json:"unit,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	Completed   bool     `json:"completed"`
	Created     string   `json:"created,omitempty"`
}

// Search runs the journal search and projects the results.
func (s *Service) Search(ctx context.Context, opts SearchOptions) ([]ResultDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, err := buildQuery(opts)
	if err != nil {
		return nil, err
	}
	results, err := s.App.Search(ctx, q, s.now())
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	out := make([]ResultDTO, 0, len(results))
	for i := range results {
		out = append(out, toResultDTO(&results[i]))
	}
	return out, nil
}

func buildQuery(opts SearchOptions) (search.Query, error) {
	r, err := search.ParseDateRange(opts.Range)
	if err != nil {
		return search.Query{}, err
	}
	by, err := search.ParseSortBy(opts.SortBy)
	if err != nil {
		return search.Query{}, err
	}
	filters, err := ParseKinds(opts.Kinds)
	if err != nil {
		return search.Query{}, err
	}
	return search.Query{Text: opts.Query, Filters: filters, Range: r, SortBy: by}, nil
}

// ParseKinds converts "all", "entries" or "goals" to search filters.
func ParseKinds(raw string) (search.Filters, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return search.AllKinds, nil
	case "entries", "entry":
		return search.Filters{Entries: true}, nil
	case "goals", "goal":
		return search.Filters{Goals: true}, nil
	default:
		return search.Filters{}, fmt.Errorf("mcp: unknown kinds %q", raw)
	}
}

// Entry returns the entry for the given ISO date.
func (s *Service) Entry(ctx context.Context, date string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d, err := calendar.ParseDate(date)
	if err != nil {
		return nil, err
	}
	e, err := s.App.Entry(ctx, d)
	if err != nil {
		return nil, err
	}
	dto := toEntryDTO(e)
	return &dto, nil
}

// SaveEntryOptions captures the save_entry tool arguments. Nil fields are
// left unchanged on an existing entry.
type SaveEntryOptions struct {
	Date       string
	Mood       *string
	Reflection *string
	Gratitude  []string
	Habits     map[string]bool
}

// SaveEntry merges opts into the day's entry and stores it.
func (s *Service) SaveEntry(ctx context.Context, opts SaveEntryOptions) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	date := calendar.DateOf(s.now())
	if strings.TrimSpace(opts.Date) != "" {
		var err error
		date, err = calendar.ParseDate(opts.Date)
		if err != nil {
			return nil, err
		}
	}
	if len(opts.Gratitude) > journal.GratitudeSlots {
		return nil, fmt.Errorf("mcp: at most %d gratitude notes", journal.GratitudeSlots)
	}

	e, err := s.App.EditEntry(ctx, date, s.now(), func(e *journal.Entry) error {
		if opts.Mood != nil {
			m, err := glyph.ParseMood(*opts.Mood)
			if err != nil {
				return err
			}
			e.Mood = m
		}
		if opts.Reflection != nil {
			e.Reflection = *opts.Reflection
		}
		if opts.Gratitude != nil {
			e.Gratitude = [journal.GratitudeSlots]string{}
			copy(e.Gratitude[:], opts.Gratitude)
		}
		if e.Habits == nil {
			e.Habits = map[string]bool{}
		}
		for k, v := range opts.Habits {
			e.Habits[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	dto := toEntryDTO(e)
	return &dto, nil
}

// Month returns the annotated month grid.
func (s *Service) Month(ctx context.Context, year int, month time.Month) (app.MonthView, error) {
	if err := s.ready(); err != nil {
		return app.MonthView{}, err
	}
	return s.App.MonthView(ctx, month, year, calendar.DateOf(s.now()))
}

// Goals lists goals, optionally hiding completed ones.
func (s *Service) Goals(ctx context.Context, includeCompleted bool) ([]GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	goals, err := s.App.Goals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		if g.Completed && !includeCompleted {
			continue
		}
		out = append(out, toGoalDTO(g))
	}
	return out, nil
}

// AddGoal creates a goal.
func (s *Service) AddGoal(ctx context.Context, in app.GoalInput) (*GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.App.AddGoal(ctx, in, s.now())
	if err != nil {
		return nil, err
	}
	dto := toGoalDTO(*g)
	return &dto, nil
}

// UpdateGoalProgress sets the current value of a goal.
func (s *Service) UpdateGoalProgress(ctx context.Context, id string, value float64) (*GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.App.SetGoalProgress(ctx, id, journal.Quantity(value))
	if err != nil {
		return nil, err
	}
	dto := toGoalDTO(*g)
	return &dto, nil
}

// CompleteGoal marks a goal done or reopens it.
func (s *Service) CompleteGoal(ctx context.Context, id string, done bool) (*GoalDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	g, err := s.App.CompleteGoal(ctx, id, done)
	if err != nil {
		return nil, err
	}
	dto := toGoalDTO(*g)
	return &dto, nil
}

// GoalSummary aggregates the user's goals.
func (s *Service) GoalSummary(ctx context.Context) (stats.GoalSummary, error) {
	if err := s.ready(); err != nil {
		return stats.GoalSummary{}, err
	}
	return s.App.GoalSummary(ctx)
}

func toResultDTO(r *search.Result) ResultDTO {
	dto := ResultDTO{Type: string(r.Kind), Score: r.Score}
	if !r.MatchedAt.IsZero() {
		dto.MatchedAt = journal.FormatTime(r.MatchedAt)
	}
	if r.Entry != nil {
		e := toEntryDTO(r.Entry)
		dto.Entry = &e
	}
	if r.Goal != nil {
		g := toGoalDTO(*r.Goal)
		dto.Goal = &g
	}
	return dto
}

func toEntryDTO(e *journal.Entry) EntryDTO {
	dto := EntryDTO{
		Date:           e.Date.String(),
		Mood:           string(e.Mood),
		MoodEmoji:      e.Mood.Emoji(),
		Habits:         e.Habits,
		HabitsProgress: stats.HabitsProgress(e.Habits),
		Reflection:     e.Reflection,
	}
	for key, text := range e.Checklist.TaskText {
		dto.Tasks = append(dto.Tasks, TaskDTO{Key: key, Text: text, Done: e.Checklist.Checkboxes[key]})
	}
	sort.Slice(dto.Tasks, func(i, j int) bool { return dto.Tasks[i].Key < dto.Tasks[j].Key })
	for _, g := range e.Gratitude {
		if g != "" {
			dto.Gratitude = append(dto.Gratitude, g)
		}
	}
	if !e.CreatedAt.IsZero() {
		dto.Created = journal.FormatTime(e.CreatedAt.Time)
	}
	if !e.UpdatedAt.IsZero() {
		dto.Updated = journal.FormatTime(e.UpdatedAt.Time)
	}
	return dto
}

func toGoalDTO(g journal.Goal) GoalDTO {
	dto := GoalDTO{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Priority:    string(g.Priority),
		Target:      float64(g.TargetValue),
		Current:     float64(g.CurrentValue),
		Unit:        g.Unit,
		Completed:   g.Completed,
	}
	if g.Deadline != nil {
		dto.Deadline = g.Deadline.String()
	}
	if pct, ok := stats.GoalProgress(g); ok {
		dto.Progress = &pct
	}
	if !g.CreatedAt.IsZero() {
		dto.Created = journal.FormatTime(g.CreatedAt.Time)
	}
	return dto
}
