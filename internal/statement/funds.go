package statement

import "github.com/shopspring/decimal"

// FundColumns labels the two governmental fund columns.
type FundColumns struct {
	GeneralFund   string `json:"general_fund"`
	NonMajorFunds string `json:"non_major_funds"`
}

// DefaultFundColumns are the printed column headings.
var DefaultFundColumns = FundColumns{GeneralFund: "General Fund", NonMajorFunds: "Non-Major Funds"}

// BalanceSheet is the governmental funds balance sheet.
type BalanceSheet struct {
	Title                                string              `json:"title"`
	Funds                                FundColumns         `json:"funds"`
	Assets                               FundAssets          `json:"assets"`
	Liabilities                          FundLiabilities     `json:"liabilities"`
	DeferredInflows                      FundDeferredInflows `json:"deferred_inflows"`
	FundBalances                         FundBalances        `json:"fund_balances"`
	TotalLiabilitiesDeferredFundBalances FundLineItem        `json:"total_liabilities_deferred_fund_balances"`
	BalanceValidation                    BalanceValidation   `json:"balance_validation"`
}

type FundAssets struct {
	CashAndEquivalents      FundLineItem `json:"cash_and_equivalents"`
	TaxesReceivable         FundLineItem `json:"taxes_receivable"`
	DueFromOtherGovernments FundLineItem `json:"due_from_other_governments"`
	DueFromOtherFunds       FundLineItem `json:"due_from_other_funds"`
	OtherReceivables        FundLineItem `json:"other_receivables"`
	Inventories             FundLineItem `json:"inventories"`
	UnrealizedExpenditures  FundLineItem `json:"unrealized_expenditures"`
	TotalAssets             FundLineItem `json:"total_assets"`
}

type FundLiabilities struct {
	AccountsPayable       FundLineItem `json:"accounts_payable"`
	PayrollDeductions     FundLineItem `json:"payroll_deductions"`
	AccruedWages          FundLineItem `json:"accrued_wages"`
	DueToOtherFunds       FundLineItem `json:"due_to_other_funds"`
	DueToOtherGovernments FundLineItem `json:"due_to_other_governments"`
	UnearnedRevenue       FundLineItem `json:"unearned_revenue"`
	TotalLiabilities      FundLineItem `json:"total_liabilities"`
}

type FundDeferredInflows struct {
	UnavailableRevenuePropertyTaxes FundLineItem `json:"unavailable_revenue_property_taxes"`
	TotalDeferredInflows            FundLineItem `json:"total_deferred_inflows"`
}

type FundBalances struct {
	Nonspendable      Nonspendable       `json:"nonspendable"`
	Restricted        RestrictedBalances `json:"restricted"`
	Committed         Committed          `json:"committed"`
	Assigned          Assigned           `json:"assigned"`
	Unassigned        FundLineItem       `json:"unassigned"`
	TotalFundBalances FundLineItem       `json:"total_fund_balances"`
}

type Nonspendable struct {
	Inventories  FundLineItem `json:"inventories"`
	PrepaidItems FundLineItem `json:"prepaid_items"`
}

type RestrictedBalances struct {
	FederalStateFunds      FundLineItem `json:"federal_state_funds"`
	RetirementLongTermDebt FundLineItem `json:"retirement_long_term_debt"`
	OtherRestrictions      FundLineItem `json:"other_restrictions"`
}

type Committed struct {
	Construction   FundLineItem `json:"construction"`
	OtherCommitted FundLineItem `json:"other_committed"`
}

type Assigned struct {
	OtherAssigned FundLineItem `json:"other_assigned"`
}

// Recompute sets every total from its sibling lines.
func (s *BalanceSheet) Recompute() {
	a := &s.Assets
	a.TotalAssets = SumFunds(a.TotalAssets, a.CashAndEquivalents, a.TaxesReceivable, a.DueFromOtherGovernments,
		a.DueFromOtherFunds, a.OtherReceivables, a.Inventories, a.UnrealizedExpenditures)

	l := &s.Liabilities
	l.TotalLiabilities = SumFunds(l.TotalLiabilities, l.AccountsPayable, l.PayrollDeductions, l.AccruedWages,
		l.DueToOtherFunds, l.DueToOtherGovernments, l.UnearnedRevenue)

	d := &s.DeferredInflows
	d.TotalDeferredInflows = SumFunds(d.TotalDeferredInflows, d.UnavailableRevenuePropertyTaxes)

	fb := &s.FundBalances
	fb.TotalFundBalances = SumFunds(fb.TotalFundBalances,
		fb.Nonspendable.Inventories, fb.Nonspendable.PrepaidItems,
		fb.Restricted.FederalStateFunds, fb.Restricted.RetirementLongTermDebt, fb.Restricted.OtherRestrictions,
		fb.Committed.Construction, fb.Committed.OtherCommitted,
		fb.Assigned.OtherAssigned,
		fb.Unassigned)

	s.TotalLiabilitiesDeferredFundBalances = SumFunds(s.TotalLiabilitiesDeferredFundBalances,
		l.TotalLiabilities, d.TotalDeferredInflows, fb.TotalFundBalances)
}

// BalanceSides returns total assets against liabilities, deferred inflows
// and fund balances, both fund columns combined.
func (s *BalanceSheet) BalanceSides() (left, right decimal.Decimal) {
	return s.Assets.TotalAssets.Total(), s.TotalLiabilitiesDeferredFundBalances.Total()
}

// RevenuesExpenditures is the governmental funds statement of revenues,
// expenditures and changes in fund balances.
type RevenuesExpenditures struct {
	Title            string            `json:"title"`
	Funds            FundColumns       `json:"funds"`
	Revenues         FundRevenues      `json:"revenues"`
	Expenditures     FundExpenditures  `json:"expenditures"`
	ExcessDeficiency FundLineItem      `json:"excess_deficiency"`
	OtherFinancing   OtherFinancing    `json:"other_financing"`
	NetChange        FundLineItem      `json:"net_change"`
	FundBalances     FundBalanceChange `json:"fund_balances"`
}

type FundRevenues struct {
	LocalIntermediateSources FundLineItem `json:"local_intermediate_sources"`
	StateProgramRevenues     FundLineItem `json:"state_program_revenues"`
	FederalProgramRevenues   FundLineItem `json:"federal_program_revenues"`
	TotalRevenues            FundLineItem `json:"total_revenues"`
}

type FundExpenditures struct {
	Current           FunctionLines `json:"current"`
	TotalExpenditures FundLineItem  `json:"total_expenditures"`
}

// FunctionLines are expenditure rows in ExpenditureFunctions order. They
// encode as a JSON object keyed by function key.
type FunctionLines []FunctionLine

// Line returns a pointer to the row with key, or nil.
func (f FunctionLines) Line(key string) *FunctionLine {
	for i := range f {
		if f[i].Key == key {
			return &f[i]
		}
	}
	return nil
}

type OtherFinancing struct {
	SaleProperty           FundLineItem `json:"sale_property"`
	TransfersIn            FundLineItem `json:"transfers_in"`
	PremiumBondRemarketing FundLineItem `json:"premium_bond_remarketing"`
	OtherResources         FundLineItem `json:"other_resources"`
	TransfersOut           FundLineItem `json:"transfers_out"`
	TotalOtherFinancing    FundLineItem `json:"total_other_financing"`
}

type FundBalanceChange struct {
	Beginning FundLineItem `json:"beginning"`
	Ending    FundLineItem `json:"ending"`
}

// Recompute derives totals, the excess line, the net change and ending
// fund balances from the detail lines and the beginning balances.
func (s *RevenuesExpenditures) Recompute() {
	r := &s.Revenues
	r.TotalRevenues = SumFunds(r.TotalRevenues, r.LocalIntermediateSources, r.StateProgramRevenues, r.FederalProgramRevenues)

	e := &s.Expenditures
	current := make([]FundLineItem, 0, len(e.Current))
	for _, f := range e.Current {
		current = append(current, f.FundLineItem)
	}
	e.TotalExpenditures = SumFunds(e.TotalExpenditures, current...)

	s.ExcessDeficiency = SumFunds(s.ExcessDeficiency, r.TotalRevenues, negate(e.TotalExpenditures))

	o := &s.OtherFinancing
	o.TotalOtherFinancing = SumFunds(o.TotalOtherFinancing, o.SaleProperty, o.TransfersIn, o.PremiumBondRemarketing,
		o.OtherResources, o.TransfersOut)

	s.NetChange = SumFunds(s.NetChange, s.ExcessDeficiency, o.TotalOtherFinancing)
	s.FundBalances.Ending = SumFunds(s.FundBalances.Ending, s.FundBalances.Beginning, s.NetChange)
}

func negate(f FundLineItem) FundLineItem {
	f.GeneralFund = f.GeneralFund.Neg()
	f.NonMajorFunds = f.NonMajorFunds.Neg()
	return f
}
