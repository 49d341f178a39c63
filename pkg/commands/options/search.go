package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/search"
)

// SearchOptions
type SearchOptions struct {
	Entries bool
	Goals   bool
	Range   string
	Sort    string
	Watch   bool
}

func AddSearchArgs(cmd *cobra.Command, o *SearchOptions) {
	cmd.Flags().BoolVar(&o.Entries, "entries", true,
		"Include daily entries.")
	cmd.Flags().BoolVar(&o.Goals, "goals", true,
		"Include goals.")
	cmd.Flags().StringVar(&o.Range, "range", string(search.RangeAll),
		"Only show results after the start of: all, week, month or year.")
	cmd.Flags().StringVar(&o.Sort, "sort", string(search.SortRelevance),
		"Order results by: relevance, date or mood.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Re-run the search whenever the journal changes.")

	_ = cmd.RegisterFlagCompletionFunc("range", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(search.AllRanges()))
		for _, r := range search.AllRanges() {
			out = append(out, string(r))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(search.AllSorts()))
		for _, s := range search.AllSorts() {
			out = append(out, string(s))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// Query builds the search query from the flags and the joined arguments.
func (o *SearchOptions) Query(args []string) (search.Query, error) {
	if !o.Entries && !o.Goals {
		return search.Query{}, errors.New("nothing to search: --entries and --goals are both off")
	}
	r, err := search.ParseDateRange(o.Range)
	if err != nil {
		return search.Query{}, err
	}
	by, err := search.ParseSortBy(o.Sort)
	if err != nil {
		return search.Query{}, err
	}
	return search.Query{
		Text:    strings.Join(args, " "),
		Filters: search.Filters{Entries: o.Entries, Goals: o.Goals},
		Range:   r,
		SortBy:  by,
	}, nil
}
