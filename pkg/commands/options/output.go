package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// PrintJSON writes v as a single JSON line.
func (o *OutputOptions) PrintJSON(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

// HandleError reports err as {"error": "..."} when JSON output is on, so
// scripted callers always receive JSON.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		return o.PrintJSON(map[string]string{
			"error": err.Error(),
		})
	}
	return err
}
