package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/audit"
)

func newAuditCommand(opts *rootOptions) *cobra.Command {
	var flags generateFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Write the audit trail tracing every row to its statement line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			ropts, err := flags.options(e)
			if err != nil {
				return err
			}
			rows, cls, err := loadInputs(e)
			if err != nil {
				return err
			}
			stmts, err := generate(e, rows, cls, ropts)
			if err != nil {
				return err
			}

			records := audit.Build(rows, cls, stmts)
			if err := audit.Save(e.ws.Root, records); err != nil {
				return err
			}
			summary := audit.Summarize(records, ropts.SignConvention)
			e.log().Info().Int("records", summary.Records).Int("unmapped", summary.Unmapped).
				Int("rolled_up", summary.RolledUp).Bool("balanced", summary.Balanced).Msg("wrote audit trail")

			if asJSON {
				if err := writeJSON(e.out, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(e.out, "Wrote %s\n", e.ws.Path(audit.File))
				fmt.Fprintf(e.out, "Records: %d (mapped %d, unmapped %d, rolled up %d)\n",
					summary.Records, summary.Mapped, summary.Unmapped, summary.RolledUp)
				fmt.Fprintf(e.out, "Debits: %s  Credits: %s  Difference: %s\n",
					fixed(summary.Debits), fixed(summary.Credits), fixed(summary.Difference))
			}

			return e.record("audit", "write_audit_trail", fmt.Sprintf("audit trail of %d records", summary.Records))
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
