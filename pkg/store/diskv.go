package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/journal"
)

const (
	kindEntries = "entries"
	kindGoals   = "goals"

	entryKeyLayout = "20060102"
)

// Load creates a Repository backed by diskv using the provided config.
func Load(cfg Config) (Repository, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// persistence stores one JSON document per record at
// <base>/<kind>/<hex(user)>/<name>. Entries are named by date, so writing an
// entry for an existing day replaces it.
type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) readEntry(key string) (*journal.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &journal.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *persistence) readGoal(key string) (*journal.Goal, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	g := &journal.Goal{}
	if err := json.Unmarshal(val, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *persistence) entries(ctx context.Context, userID string, keep func(journal.Entry) bool) []journal.Entry {
	all := make([]journal.Entry, 0)
	for key := range p.d.KeysPrefix(prefixFor(kindEntries, userID), ctx.Done()) {
		e, err := p.readEntry(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		if keep(*e) {
			all = append(all, *e)
		}
	}
	sortEntries(all)
	return all
}

func (p *persistence) goals(ctx context.Context, userID string, keep func(journal.Goal) bool) []journal.Goal {
	all := make([]journal.Goal, 0)
	for key := range p.d.KeysPrefix(prefixFor(kindGoals, userID), ctx.Done()) {
		g, err := p.readGoal(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		if keep(*g) {
			all = append(all, *g)
		}
	}
	sortGoals(all)
	return all
}

func (p *persistence) SearchEntries(ctx context.Context, userID, query string) ([]journal.Entry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return p.entries(ctx, userID, func(e journal.Entry) bool {
		return e.Matches(query)
	}), ctx.Err()
}

func (p *persistence) SearchGoals(ctx context.Context, userID, query string) ([]journal.Goal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return p.goals(ctx, userID, func(g journal.Goal) bool {
		return g.Matches(query)
	}), ctx.Err()
}

func (p *persistence) EntriesBetween(ctx context.Context, userID string, from, to calendar.Date) ([]journal.Entry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return p.entries(ctx, userID, func(e journal.Entry) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	}), ctx.Err()
}

func (p *persistence) Entry(_ context.Context, userID string, date calendar.Date) (*journal.Entry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	key := entryKey(userID, date)
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	return p.readEntry(key)
}

func (p *persistence) UpsertEntry(_ context.Context, e *journal.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if err := requireUser(e.UserID); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return errors.New("store: entry date required")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(entryKey(e.UserID, e.Date), data)
}

func (p *persistence) Goals(ctx context.Context, userID string) ([]journal.Goal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return p.goals(ctx, userID, func(journal.Goal) bool { return true }), ctx.Err()
}

func (p *persistence) Goal(_ context.Context, userID, id string) (*journal.Goal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	key := goalKey(userID, id)
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	return p.readGoal(key)
}

func (p *persistence) SaveGoal(_ context.Context, g *journal.Goal) error {
	if g == nil {
		return errors.New("store: nil goal")
	}
	if err := requireUser(g.UserID); err != nil {
		return err
	}
	if g.ID == "" {
		return errors.New("store: goal id required")
	}
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return p.d.Write(goalKey(g.UserID, g.ID), data)
}

func (p *persistence) DeleteGoal(_ context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	key := goalKey(userID, id)
	if !p.d.Has(key) {
		return ErrNotFound
	}
	return p.d.Erase(key)
}

func (p *persistence) Close() error {
	return nil
}

func sortEntries(entries []journal.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

func sortGoals(goals []journal.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		lt := goals[i].CreatedAt.Time
		rt := goals[j].CreatedAt.Time
		if lt.Equal(rt) {
			return goals[i].ID < goals[j].ID
		}
		return lt.Before(rt)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// prefixFor makes `kind-user-`
func prefixFor(kind, userID string) string {
	return fmt.Sprintf("%s-%s-", kind, toUser(userID))
}

// entryKey makes `entries-user-20240301`
func entryKey(userID string, date calendar.Date) string {
	return prefixFor(kindEntries, userID) + date.Time(nil).Format(entryKeyLayout)
}

// goalKey makes `goals-user-id`, with dashes dropped from the id.
func goalKey(userID, id string) string {
	return prefixFor(kindGoals, userID) + strings.ReplaceAll(id, "-", "")
}

func toUser(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromUser(s string) string {
	user, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(user)
}
