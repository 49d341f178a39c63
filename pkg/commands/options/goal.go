package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/calendar"
	"tableflip.dev/daylog/pkg/journal"
)

// GoalOptions
type GoalOptions struct {
	Description string
	Category    string
	Priority    string
	Deadline    string
	Target      string
	Unit        string
}

func AddGoalArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the goal.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", string(journal.CategoryPersonal),
		"One of: "+joinCategories()+".")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", string(journal.PriorityMedium),
		"One of: low, medium, high.")
	cmd.Flags().StringVar(&o.Deadline, "deadline", "",
		`Deadline date, example: --deadline="2024-12-31".`)
	cmd.Flags().StringVarP(&o.Target, "target", "t", "",
		"Numeric target to track progress against.")
	cmd.Flags().StringVarP(&o.Unit, "unit", "u", "",
		"Unit of the target, such as books or km.")
}

func joinCategories() string {
	names := make([]string, 0, len(journal.AllCategories()))
	for _, c := range journal.AllCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// GetDeadline parses the deadline flag; nil means none.
func (o *GoalOptions) GetDeadline() (*calendar.Date, error) {
	if strings.TrimSpace(o.Deadline) == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(o.Deadline)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetTarget parses the target flag; empty means no target.
func (o *GoalOptions) GetTarget() (journal.Quantity, error) {
	return journal.ParseQuantity(o.Target)
}
