package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about where the journal is stored.",
		Example: `
daylog info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Repo.Close()

			s := info.Info{
				Config: cfg,
				Repo:   svc.Repo,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
