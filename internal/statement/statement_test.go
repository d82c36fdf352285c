package statement

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNew_LabelsEveryLineFromSchema(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for _, l := range Flatten(s) {
		def, ok := Lookup(l.Statement, l.Path)
		require.True(t, ok, "%s %s", l.Statement, l.Path)
		assert.Equal(t, def.Code, l.Code, l.Path)
		assert.Equal(t, def.Description, l.Description, l.Path)
		assert.True(t, l.Amount.IsZero())
		seen[string(l.Statement)+":"+l.Path] = true
	}
	for k, defs := range schemas {
		for path := range defs {
			assert.True(t, seen[string(k)+":"+path], "schema line %s %s not on statement", k, path)
		}
	}

	assert.Equal(t, "1110", s.NetPosition.Assets.CurrentAssets.CashAndCashEquivalents.Code)
	assert.Equal(t, "Total Net Position", s.NetPosition.NetPosition.TotalNetPosition.Description)
	assert.Equal(t, "4000", s.BalanceSheet.TotalLiabilitiesDeferredFundBalances.Code)
	assert.Equal(t, "0093", s.RevenuesExpenditures.Expenditures.Current.Line("shared_service_arrangements").Code)
	assert.Equal(t, "TG", s.Activities.GovernmentalActivities.TotalGovernmental.Code)
	assert.Len(t, s.Activities.GovernmentalActivities.Programs, 21)
	assert.Len(t, s.RevenuesExpenditures.Expenditures.Current, 22)
	assert.Equal(t, "STATEMENT OF NET POSITION", s.NetPosition.Title)
}

func TestNetPosition_RecomputeAndSides(t *testing.T) {
	s := New()
	np := &s.NetPosition
	np.Assets.CurrentAssets.CashAndCashEquivalents.Amount = d("1000")
	np.Assets.CapitalAssets.Land.Amount = d("500")
	np.DeferredOutflows.DeferredOutflowPensions.Amount = d("50")
	np.Liabilities.CurrentLiabilities.AccountsPayable.Amount = d("700")
	np.Liabilities.NoncurrentLiabilities.DueWithinOneYear.Amount = d("100")
	np.DeferredInflows.DeferredInflowOPEB.Amount = d("25")
	np.NetPosition.Restricted.DebtService.Amount = d("225")
	np.NetPosition.Unrestricted.Amount = d("500")
	np.Recompute()

	assert.Equal(t, "1000", np.Assets.CurrentAssets.TotalCurrentAssets.Amount.String())
	assert.Equal(t, "1500", np.Assets.TotalAssets.Amount.String())
	assert.Equal(t, "800", np.Liabilities.TotalLiabilities.Amount.String())
	assert.Equal(t, "225", np.NetPosition.Restricted.TotalRestricted.Amount.String())
	assert.Equal(t, "725", np.NetPosition.TotalNetPosition.Amount.String())

	left, right := np.BalanceSides()
	assert.Equal(t, "1550", left.String())
	assert.Equal(t, "1550", right.String())
}

func TestActivities_Recompute(t *testing.T) {
	s := New()
	a := &s.Activities
	inst := a.GovernmentalActivities.Program("instruction")
	require.NotNil(t, inst)
	inst.Expenses = d("1000")
	inst.OperatingGrants = d("300")
	food := a.GovernmentalActivities.Program("food_service")
	food.Expenses = d("200")
	food.ChargesForServices = d("150")
	a.GeneralRevenues.PropertyTaxesGeneral.Amount = d("800")
	a.NetPosition.NetPositionBeginning.Amount = d("100")
	a.Recompute()

	assert.Equal(t, "-700", inst.NetExpenseRevenue.String())
	assert.Equal(t, "-50", food.NetExpenseRevenue.String())
	tg := a.GovernmentalActivities.TotalGovernmental
	assert.Equal(t, "1200", tg.Expenses.String())
	assert.Equal(t, "-750", tg.NetExpenseRevenue.String())
	assert.Equal(t, "TP", a.GovernmentalActivities.TotalPrimary.Code)
	assert.True(t, tg.Expenses.Equal(a.GovernmentalActivities.TotalPrimary.Expenses))
	assert.Equal(t, "800", a.GeneralRevenues.TotalGeneralRevenues.Amount.String())
	assert.Equal(t, "50", a.NetPosition.ChangeInNetPosition.Amount.String())
	assert.Equal(t, "150", a.NetPosition.NetPositionEnding.Amount.String())
}

func TestBalanceSheet_RecomputeAndSides(t *testing.T) {
	s := New()
	bs := &s.BalanceSheet
	bs.Assets.CashAndEquivalents.GeneralFund = d("900")
	bs.Assets.CashAndEquivalents.NonMajorFunds = d("100")
	bs.Liabilities.AccountsPayable.GeneralFund = d("400")
	bs.DeferredInflows.UnavailableRevenuePropertyTaxes.GeneralFund = d("100")
	bs.FundBalances.Unassigned.GeneralFund = d("400")
	bs.FundBalances.Restricted.FederalStateFunds.NonMajorFunds = d("100")
	bs.Recompute()

	assert.Equal(t, "500", bs.FundBalances.TotalFundBalances.Total().String())
	assert.Equal(t, "900", bs.TotalLiabilitiesDeferredFundBalances.GeneralFund.String())
	assert.Equal(t, "100", bs.TotalLiabilitiesDeferredFundBalances.NonMajorFunds.String())
	left, right := bs.BalanceSides()
	assert.True(t, left.Equal(right))
}

func TestRevenuesExpenditures_Recompute(t *testing.T) {
	s := New()
	re := &s.RevenuesExpenditures
	re.Revenues.LocalIntermediateSources.GeneralFund = d("1000")
	re.Revenues.FederalProgramRevenues.NonMajorFunds = d("200")
	re.Expenditures.Current.Line("instruction").GeneralFund = d("900")
	re.Expenditures.Current.Line("food_service").NonMajorFunds = d("250")
	re.OtherFinancing.TransfersIn.NonMajorFunds = d("50")
	re.OtherFinancing.TransfersOut.GeneralFund = d("-50")
	re.FundBalances.Beginning.GeneralFund = d("10")
	re.Recompute()

	assert.Equal(t, "1200", re.Revenues.TotalRevenues.Total().String())
	assert.Equal(t, "1150", re.Expenditures.TotalExpenditures.Total().String())
	assert.Equal(t, "100", re.ExcessDeficiency.GeneralFund.String())
	assert.Equal(t, "-50", re.ExcessDeficiency.NonMajorFunds.String())
	assert.True(t, re.OtherFinancing.TotalOtherFinancing.Total().IsZero())
	assert.Equal(t, "50", re.NetChange.GeneralFund.String())
	assert.Equal(t, "0", re.NetChange.NonMajorFunds.String())
	assert.Equal(t, "60", re.FundBalances.Ending.GeneralFund.String())
}

func TestMarshalJSON_KeyedSectionsInOrder(t *testing.T) {
	s := New()
	b, err := json.Marshal(s.Activities.GovernmentalActivities)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, `{"instruction":{"code":"11"`), out)
	assert.Less(t, strings.Index(out, `"other_intergovernmental"`), strings.Index(out, `"total_governmental"`))
	assert.Less(t, strings.Index(out, `"total_governmental"`), strings.Index(out, `"total_primary"`))

	b, err = json.Marshal(s.RevenuesExpenditures.Expenditures)
	require.NoError(t, err)
	out = string(b)
	assert.True(t, strings.HasPrefix(out, `{"current":{"instruction":{"code":"0011"`), out)
	assert.Contains(t, out, `"principal_long_term_debt":{"code":"0071"`)

	var generic map[string]any
	full, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(full, &generic))
	assert.ElementsMatch(t, []string{"net_position", "activities", "balance_sheet", "revenues_expenditures"}, keys(generic))
}

func TestIndex(t *testing.T) {
	s := New()
	s.BalanceSheet.Assets.Inventories.NonMajorFunds = d("42")
	idx := Index(s)
	l, ok := idx[CellKey(KindBalanceSheet, "assets.inventories", ColumnNonMajorFunds)]
	require.True(t, ok)
	assert.Equal(t, "42", l.Amount.String())
	assert.Equal(t, "1300", l.Code)

	_, ok = idx[CellKey(KindActivities, "governmental_activities.instruction", ColumnExpenses)]
	assert.True(t, ok)
}

func TestProgramLookups(t *testing.T) {
	p, ok := ProgramByCode("35")
	require.True(t, ok)
	assert.Equal(t, "food_service", p.Key)
	_, ok = ProgramByCode("71")
	assert.False(t, ok, "principal is not an activities program")

	f, ok := ExpenditureByFunction("71")
	require.True(t, ok)
	assert.Equal(t, "0071", f.Code)

	assert.Panics(t, func() { Def(KindNetPosition, "assets.nope") })
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCells_WriteThrough(t *testing.T) {
	s := New()
	np := Cells(KindNetPosition, &s.NetPosition)
	p := np[CellKey(KindNetPosition, "assets.capital_assets.land", ColumnAmount)]
	require.NotNil(t, p)
	*p = p.Add(d("12.5"))
	assert.Equal(t, "12.5", s.NetPosition.Assets.CapitalAssets.Land.Amount.String())

	act := Cells(KindActivities, &s.Activities)
	p = act[CellKey(KindActivities, "governmental_activities.food_service", ColumnChargesForServices)]
	require.NotNil(t, p)
	*p = d("7")
	assert.Equal(t, "7", s.Activities.GovernmentalActivities.Program("food_service").ChargesForServices.String())

	re := Cells(KindRevenuesExpenditures, &s.RevenuesExpenditures)
	p = re[CellKey(KindRevenuesExpenditures, "expenditures.current.capital_outlay", ColumnNonMajorFunds)]
	require.NotNil(t, p)
	*p = d("3")
	assert.Equal(t, "3", s.RevenuesExpenditures.Expenditures.Current.Line("capital_outlay").NonMajorFunds.String())

	assert.Len(t, Cells(KindBalanceSheet, &s.BalanceSheet), 56)
}
