package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/districtfs/internal/balance"
	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/rollup"
	"github.com/cleared-dev/districtfs/internal/statement"
	"github.com/cleared-dev/districtfs/internal/workspace"
)

// generateFlags override the statement options from districtfs.yaml.
type generateFlags struct {
	signConvention string
	tolerance      string
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.signConvention, "sign-convention", "", "natural or signed (default from config)")
	cmd.Flags().StringVar(&f.tolerance, "tolerance", "", "balance check tolerance (default from config)")
}

func (f *generateFlags) options(e *env) (rollup.Options, error) {
	sc := e.ws.Config.Statements
	if f.signConvention != "" {
		sc.SignConvention = f.signConvention
	}
	if f.tolerance != "" {
		sc.Tolerance = f.tolerance
	}
	return sc.RollupOptions()
}

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the four financial statements",
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
			if err := e.ws.SaveStatements(stmts); err != nil {
				return err
			}

			np := stmts.NetPosition.BalanceValidation
			bs := stmts.BalanceSheet.BalanceValidation
			fmt.Fprintf(e.out, "Wrote %s\n", e.ws.Path(workspace.StatementsFile))
			fmt.Fprintln(e.out, balance.Describe(statement.KindNetPosition, np))
			fmt.Fprintln(e.out, balance.Describe(statement.KindBalanceSheet, bs))
			fmt.Fprintf(e.out, "Change in net position: %s\n",
				fixed(stmts.Activities.NetPosition.ChangeInNetPosition.Amount))

			return e.record("generate", "generate_statements", fmt.Sprintf("statements from %d rows", len(rows)))
		},
	}
	flags.register(cmd)
	return cmd
}

// loadInputs reads the trial balance and a snapshot of its classifications.
func loadInputs(e *env) ([]model.TrialBalanceRow, model.Classifications, error) {
	rows, err := e.ws.TrialBalance()
	if err != nil {
		return nil, nil, err
	}
	store, err := e.ws.Mappings()
	if err != nil {
		return nil, nil, err
	}
	return rows, store.Snapshot(), nil
}

func generate(e *env, rows []model.TrialBalanceRow, cls model.Classifications, opts rollup.Options) (*statement.Statements, error) {
	start := time.Now()
	stmts, err := rollup.Generate(e.ctx, rows, cls, opts)
	if err != nil {
		return nil, fmt.Errorf("generating statements: %w", err)
	}

	ev := e.log().Info()
	if !stmts.NetPosition.BalanceValidation.Balanced || !stmts.BalanceSheet.BalanceValidation.Balanced {
		ev = e.log().Warn()
	}
	ev.Int("rows", len(rows)).
		Int("classifications", len(cls)).
		Str("sign_convention", string(opts.SignConvention)).
		Bool("net_position_balanced", stmts.NetPosition.BalanceValidation.Balanced).
		Bool("balance_sheet_balanced", stmts.BalanceSheet.BalanceValidation.Balanced).
		Str("balance_sheet_difference", fixed(stmts.BalanceSheet.BalanceValidation.Difference)).
		Dur("elapsed", time.Since(start)).
		Msg("generated statements")
	return stmts, nil
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
