package journal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/daylog/pkg/calendar"
)

// Category groups goals by area of life.
type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryHealth    Category = "health"
	CategoryCareer    Category = "career"
	CategoryLearning  Category = "learning"
	CategoryFinancial Category = "financial"
)

// AllCategories returns the supported categories.
func AllCategories() []Category {
	return []Category{
		CategoryPersonal,
		CategoryHealth,
		CategoryCareer,
		CategoryLearning,
		CategoryFinancial,
	}
}

// ParseCategory converts a string to a Category. Empty input means personal.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryPersonal, nil
	}
	for _, candidate := range AllCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return CategoryPersonal, fmt.Errorf("journal: unknown category %q", raw)
}

// Priority ranks goals.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns the supported priorities, lowest first.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority converts a string to a Priority. Empty input means medium.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, nil
	}
	for _, candidate := range AllPriorities() {
		if candidate == p {
			return candidate, nil
		}
	}
	return PriorityMedium, fmt.Errorf("journal: unknown priority %q", raw)
}

// Quantity is a goal measurement. It decodes from a JSON number or from a
// numeric string, and an empty string decodes as zero.
type Quantity float64

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*q = Quantity(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("journal: quantity: %w", err)
	}
	v, err := ParseQuantity(s)
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// ParseQuantity reads a numeric string; blank means zero.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("journal: invalid quantity %q", s)
	}
	return Quantity(f), nil
}

func (q Quantity) String() string {
	return strconv.FormatFloat(float64(q), 'f', -1, 64)
}

// Goal is a user goal with optional numeric progress.
type Goal struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Category     Category       `json:"category"`
	Priority     Priority       `json:"priority"`
	Deadline     *calendar.Date `json:"deadline,omitempty"`
	TargetValue  Quantity       `json:"targetValue"`
	CurrentValue Quantity       `json:"currentValue"`
	Unit         string         `json:"unit,omitempty"`
	Completed    bool           `json:"completed"`
	CreatedAt    Timestamp      `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with g.
func (g Goal) Clone() Goal {
	out := g
	if g.Deadline != nil {
		d := *g.Deadline
		out.Deadline = &d
	}
	return out
}

// Matches reports whether query appears, ignoring case, in the title or description.
func (g Goal) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(g.Title), q) ||
		strings.Contains(strings.ToLower(g.Description), q)
}
