package rollup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/balance"
	"github.com/cleared-dev/districtfs/internal/classify"
	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/statement"
)

// ErrNoClassifications is returned when Generate is called without any
// account classifications.
var ErrNoClassifications = errors.New("no account classifications")

// SignConvention says how trial balance amounts carry their sign.
type SignConvention string

const (
	// SignNatural amounts are already positive on their normal balance side.
	SignNatural SignConvention = "natural"
	// SignSigned amounts are debit positive and credit negative.
	SignSigned SignConvention = "signed"
)

// ParseSignConvention accepts "natural" or "signed"; empty means natural.
func ParseSignConvention(s string) (SignConvention, error) {
	switch SignConvention(strings.ToLower(strings.TrimSpace(s))) {
	case "", SignNatural:
		return SignNatural, nil
	case SignSigned:
		return SignSigned, nil
	}
	return "", fmt.Errorf("unknown sign convention %q", s)
}

// FundAmounts holds one amount per governmental fund column.
type FundAmounts struct {
	GeneralFund   decimal.Decimal
	NonMajorFunds decimal.Decimal
}

// Options tune statement generation.
type Options struct {
	SignConvention SignConvention
	// Tolerance for the balance checks. Zero means balance.DefaultTolerance.
	Tolerance             decimal.Decimal
	NetPositionBeginning  decimal.Decimal
	FundBalancesBeginning FundAmounts
}

func (o Options) tolerance() decimal.Decimal {
	if o.Tolerance.IsZero() {
		return balance.DefaultTolerance
	}
	return o.Tolerance
}

// Present converts a row amount to the amount shown on a statement line.
func Present(amount decimal.Decimal, c model.AccountClassification, p Placement, conv SignConvention) decimal.Decimal {
	if conv == SignSigned {
		amount = amount.Mul(classify.SignOf(c.ReportingCategory).Decimal())
	}
	if p.Negate {
		amount = amount.Neg()
	}
	return amount
}

type placer func(model.AccountClassification, acctcode.Segments) (Placement, bool)

// Generate rolls classified trial balance rows up into the four statements.
// Rows without a mapped classification are skipped. The statements are built
// concurrently, each from the same read-only inputs, and every total is
// recomputed before the balance checks are attached.
func Generate(ctx context.Context, rows []model.TrialBalanceRow, cls model.Classifications, opts Options) (*statement.Statements, error) {
	if len(cls) == 0 {
		return nil, ErrNoClassifications
	}

	out := statement.New()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		np := &out.NetPosition
		if err := accumulate(gctx, rows, cls, opts, statement.KindNetPosition, np, placeNetPosition); err != nil {
			return err
		}
		np.Recompute()
		np.BalanceValidation = balance.Validate(np, opts.tolerance())
		return nil
	})
	g.Go(func() error {
		act := &out.Activities
		if err := accumulate(gctx, rows, cls, opts, statement.KindActivities, act, placeActivities); err != nil {
			return err
		}
		act.NetPosition.NetPositionBeginning.Amount = opts.NetPositionBeginning
		act.Recompute()
		return nil
	})
	g.Go(func() error {
		bs := &out.BalanceSheet
		if err := accumulate(gctx, rows, cls, opts, statement.KindBalanceSheet, bs, placeBalanceSheet); err != nil {
			return err
		}
		bs.Recompute()
		bs.BalanceValidation = balance.Validate(bs, opts.tolerance())
		return nil
	})
	g.Go(func() error {
		re := &out.RevenuesExpenditures
		if err := accumulate(gctx, rows, cls, opts, statement.KindRevenuesExpenditures, re, placeRevenuesExpenditures); err != nil {
			return err
		}
		re.FundBalances.Beginning.GeneralFund = opts.FundBalancesBeginning.GeneralFund
		re.FundBalances.Beginning.NonMajorFunds = opts.FundBalancesBeginning.NonMajorFunds
		re.Recompute()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func accumulate(ctx context.Context, rows []model.TrialBalanceRow, cls model.Classifications, opts Options,
	k statement.Kind, stmt any, place placer) error {
	cells := statement.Cells(k, stmt)
	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		code := acctcode.Normalize(r.AccountCode)
		c, ok := cls[code]
		if !ok || !c.Mapped() || c.SecondaryCategory == model.ClearingAccounts {
			continue
		}
		p, ok := place(c, acctcode.Decode(code))
		if !ok {
			continue
		}
		cell, ok := cells[statement.CellKey(k, p.Path, p.Column)]
		if !ok {
			return fmt.Errorf("%s: no cell %s/%s for account %s", k, p.Path, p.Column, r.AccountCode)
		}
		*cell = cell.Add(Present(r.CurrentYearActual, c, p, opts.SignConvention))
	}
	return nil
}
