package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/runlog"
)

func newLogCommand(opts *rootOptions) *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the workspace run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := runlog.Read(e.ws.Root)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tCOMMAND\tACTION\tCOMMIT\tDETAILS")
			for _, en := range runlog.Tail(entries, tail) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					en.Timestamp.Format(time.RFC3339), en.Command, en.Action, en.CommitHash, en.Details)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&tail, "tail", "n", 20, "show the last n entries (0 for all)")
	return cmd
}
