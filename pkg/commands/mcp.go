package commands

import (
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var transport, addr, path string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the journal to MCP clients",
		Long: `Mcp serves journal search, month calendars, daily entries and goals
as Model Context Protocol tools and resources, over HTTP or stdio.`,
		Example: `
daylog mcp
daylog mcp --addr 127.0.0.1:0
daylog mcp --transport stdio
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Repo.Close()

			s := mcp.Server{
				App:       svc,
				Transport: t,
				Addr:      addr,
				Path:      path,
				Ready: func(a net.Addr, p string) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "daylog: serving MCP on http://%s%s\n", a, p)
				},
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return s.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address for the http transport; port 0 picks one.")
	cmd.Flags().StringVar(&path, "path", "/mcp", "Endpoint path for the http transport.")

	topLevel.AddCommand(cmd)
}
