package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/journal"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLite stores entries and goals in a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("store: db path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Keep a single connection so ":memory:" databases survive between calls.
	db.SetMaxOpenConns(1)

	if err := applySchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func applySchema(ctx context.Context, db *sql.DB) error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("store: read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

const entryColumns = `user_id, date, mood, habits, checklist, gratitude1, gratitude2, gratitude3, reflection, created_at, updated_at`

const goalColumns = `id, user_id, title, description, category, priority, deadline, target_value, current_value, unit, completed, created_at`

// likePattern wraps query for a LIKE ... ESCAPE '\' substring match.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

func (s *SQLite) SearchEntries(ctx context.Context, userID, query string) ([]journal.Entry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	pattern := likePattern(query)
	return s.queryEntries(ctx, `SELECT `+entryColumns+` FROM daily_entries
WHERE user_id = ? AND (
    reflection LIKE ? ESCAPE '\' OR
    gratitude1 LIKE ? ESCAPE '\' OR
    gratitude2 LIKE ? ESCAPE '\' OR
    gratitude3 LIKE ? ESCAPE '\')
ORDER BY date`, userID, pattern, pattern, pattern, pattern)
}

func (s *SQLite) EntriesBetween(ctx context.Context, userID string, from, to calendar.Date) ([]journal.Entry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.queryEntries(ctx, `SELECT `+entryColumns+` FROM daily_entries
WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date`, userID, from.String(), to.String())
}

func (s *SQLite) Entry(ctx context.Context, userID string, date calendar.Date) (*journal.Entry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	entries, err := s.queryEntries(ctx, `SELECT `+entryColumns+` FROM daily_entries
WHERE user_id = ? AND date = ?`, userID, date.String())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

func (s *SQLite) UpsertEntry(ctx context.Context, e *journal.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if err := requireUser(e.UserID); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return errors.New("store: entry date required")
	}
	habits, err := json.Marshal(e.Habits)
	if err != nil {
		return fmt.Errorf("store: encode habits: %w", err)
	}
	checklist, err := json.Marshal(e.Checklist)
	if err != nil {
		return fmt.Errorf("store: encode checklist: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO daily_entries (`+entryColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, date) DO UPDATE SET
    mood = excluded.mood,
    habits = excluded.habits,
    checklist = excluded.checklist,
    gratitude1 = excluded.gratitude1,
    gratitude2 = excluded.gratitude2,
    gratitude3 = excluded.gratitude3,
    reflection = excluded.reflection,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at`,
		e.UserID, e.Date.String(), string(e.Mood), string(habits), string(checklist),
		e.Gratitude[0], e.Gratitude[1], e.Gratitude[2], e.Reflection,
		formatTimestamp(e.CreatedAt), formatTimestamp(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("store: upsert entry: %w", err)
	}
	return nil
}

func (s *SQLite) queryEntries(ctx context.Context, q string, args ...any) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query entries: %w", err)
	}
	defer rows.Close()

	out := make([]journal.Entry, 0)
	for rows.Next() {
		var (
			e                    journal.Entry
			date, mood           string
			habits, checklist    string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&e.UserID, &date, &mood, &habits, &checklist,
			&e.Gratitude[0], &e.Gratitude[1], &e.Gratitude[2], &e.Reflection,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("store: scan entry: %w", err)
		}
		if err := decodeEntry(&e, date, mood, habits, checklist, createdAt, updatedAt); err != nil {
			fmt.Fprintf(os.Stderr, "store: entry %s/%s: %v\n", e.UserID, date, err)
			continue
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate entries: %w", err)
	}
	return out, nil
}

func decodeEntry(e *journal.Entry, date, mood, habits, checklist, createdAt, updatedAt string) error {
	var err error
	if e.Date, err = calendar.ParseDate(date); err != nil {
		return err
	}
	e.Mood = glyph.Mood(mood)
	if habits != "" {
		if err := json.Unmarshal([]byte(habits), &e.Habits); err != nil {
			return fmt.Errorf("habits: %w", err)
		}
	}
	if checklist != "" {
		if err := json.Unmarshal([]byte(checklist), &e.Checklist); err != nil {
			return fmt.Errorf("checklist: %w", err)
		}
	}
	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return err
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return err
	}
	return nil
}

func (s *SQLite) SearchGoals(ctx context.Context, userID, query string) ([]journal.Goal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	pattern := likePattern(query)
	return s.queryGoals(ctx, `SELECT `+goalColumns+` FROM goals
WHERE user_id = ? AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')
ORDER BY created_at, id`, userID, pattern, pattern)
}

func (s *SQLite) Goals(ctx context.Context, userID string) ([]journal.Goal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.queryGoals(ctx, `SELECT `+goalColumns+` FROM goals
WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (s *SQLite) Goal(ctx context.Context, userID, id string) (*journal.Goal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	goals, err := s.queryGoals(ctx, `SELECT `+goalColumns+` FROM goals
WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, ErrNotFound
	}
	return &goals[0], nil
}

func (s *SQLite) SaveGoal(ctx context.Context, g *journal.Goal) error {
	if g == nil {
		return errors.New("store: nil goal")
	}
	if err := requireUser(g.UserID); err != nil {
		return err
	}
	if g.ID == "" {
		return errors.New("store: goal id required")
	}
	deadline := ""
	if g.Deadline != nil {
		deadline = g.Deadline.String()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO goals (`+goalColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    category = excluded.category,
    priority = excluded.priority,
    deadline = excluded.deadline,
    target_value = excluded.target_value,
    current_value = excluded.current_value,
    unit = excluded.unit,
    completed = excluded.completed`,
		g.ID, g.UserID, g.Title, g.Description, string(g.Category), string(g.Priority), deadline,
		float64(g.TargetValue), float64(g.CurrentValue), g.Unit, g.Completed, formatTimestamp(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("store: save goal: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("store: delete goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete goal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) queryGoals(ctx context.Context, q string, args ...any) ([]journal.Goal, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query goals: %w", err)
	}
	defer rows.Close()

	out := make([]journal.Goal, 0)
	for rows.Next() {
		var (
			g                  journal.Goal
			category, priority string
			deadline, created  string
			target, current    float64
		)
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &category, &priority,
			&deadline, &target, &current, &g.Unit, &g.Completed, &created); err != nil {
			return nil, fmt.Errorf("store: scan goal: %w", err)
		}
		g.Category = journal.Category(category)
		g.Priority = journal.Priority(priority)
		g.TargetValue = journal.Quantity(target)
		g.CurrentValue = journal.Quantity(current)
		if deadline != "" {
			d, err := calendar.ParseDate(deadline)
			if err != nil {
				fmt.Fprintf(os.Stderr, "store: goal %s: %v\n", g.ID, err)
				continue
			}
			g.Deadline = &d
		}
		if g.CreatedAt, err = parseTimestamp(created); err != nil {
			fmt.Fprintf(os.Stderr, "store: goal %s: %v\n", g.ID, err)
			continue
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate goals: %w", err)
	}
	return out, nil
}

func formatTimestamp(t journal.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return journal.FormatTime(t.Time)
}

func parseTimestamp(v string) (journal.Timestamp, error) {
	if v == "" {
		return journal.Timestamp{}, nil
	}
	t, err := journal.ParseTime(v)
	if err != nil {
		return journal.Timestamp{}, err
	}
	return journal.Timestamp{Time: t}, nil
}
