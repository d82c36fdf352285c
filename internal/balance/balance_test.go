package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/districtfs/internal/statement"
)

type sides struct{ left, right decimal.Decimal }

func (s sides) BalanceSides() (decimal.Decimal, decimal.Decimal) { return s.left, s.right }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		left      string
		right     string
		tolerance string
		balanced  bool
		diff      string
	}{
		{"exact", "1000", "1000", "1.00", true, "0"},
		{"within tolerance", "1000.50", "1000", "1.00", true, "0.5"},
		{"at tolerance", "1001", "1000", "1.00", true, "1"},
		{"over tolerance", "1001.01", "1000", "1.00", false, "1.01"},
		{"right heavy", "1000", "1005", "1.00", false, "-5"},
		{"zero tolerance", "1000.01", "1000", "0", false, "0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(sides{d(tt.left), d(tt.right)}, d(tt.tolerance))
			assert.Equal(t, tt.balanced, v.Balanced)
			assert.True(t, d(tt.diff).Equal(v.Difference), "difference %s", v.Difference)
			assert.True(t, d(tt.tolerance).Equal(v.Tolerance))
		})
	}
}

func TestValidate_NegativeToleranceIsZero(t *testing.T) {
	v := Validate(sides{d("5"), d("5")}, d("-1"))
	assert.True(t, v.Balanced)
	assert.True(t, v.Tolerance.IsZero())
}

func TestValidate_NetPosition(t *testing.T) {
	s := statement.New()
	np := &s.NetPosition
	np.Assets.CurrentAssets.CashAndCashEquivalents.Amount = d("1000")
	np.Liabilities.CurrentLiabilities.AccountsPayable.Amount = d("700")
	np.NetPosition.Unrestricted.Amount = d("300")
	np.Recompute()

	v := Validate(np, DefaultTolerance)
	assert.True(t, v.Balanced)
	assert.Equal(t, "1000", v.LeftSide.String())
	assert.Equal(t, "1000", v.RightSide.String())

	np.NetPosition.Unrestricted.Amount = d("250")
	np.Recompute()
	v = Validate(np, DefaultTolerance)
	assert.False(t, v.Balanced)
	assert.Equal(t, "50", v.Difference.String())
	assert.Contains(t, Describe(statement.KindNetPosition, v), "out of balance")
}

func TestValidate_BalanceSheetCombinesColumns(t *testing.T) {
	s := statement.New()
	bs := &s.BalanceSheet
	bs.Assets.CashAndEquivalents.GeneralFund = d("600")
	bs.Assets.CashAndEquivalents.NonMajorFunds = d("400")
	bs.Liabilities.AccountsPayable.NonMajorFunds = d("700")
	bs.FundBalances.Unassigned.GeneralFund = d("300")
	bs.Recompute()

	v := Validate(bs, DefaultTolerance)
	assert.True(t, v.Balanced)
	assert.Equal(t, "balance_sheet balanced (1000.00 = 1000.00)", Describe(statement.KindBalanceSheet, v))
}
