package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the moods and calendar colors",
		Example: `
daylog key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output.JSON {
				return output.PrintJSON(map[string]interface{}{
					"moods":  glyph.DefaultMoods(),
					"legend": glyph.DefaultLegend(),
				})
			}
			k := key.Key{}
			err := k.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
