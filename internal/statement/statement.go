package statement

import (
	"github.com/shopspring/decimal"
)

// Kind names one of the four generated statements.
type Kind string

const (
	KindNetPosition          Kind = "net_position"
	KindActivities           Kind = "activities"
	KindBalanceSheet         Kind = "balance_sheet"
	KindRevenuesExpenditures Kind = "revenues_expenditures"
)

// Kinds lists the statements in presentation order.
var Kinds = []Kind{KindNetPosition, KindActivities, KindBalanceSheet, KindRevenuesExpenditures}

var titles = map[Kind]string{
	KindNetPosition:          "STATEMENT OF NET POSITION",
	KindActivities:           "STATEMENT OF ACTIVITIES",
	KindBalanceSheet:         "BALANCE SHEET - GOVERNMENTAL FUNDS",
	KindRevenuesExpenditures: "STATEMENT OF REVENUES, EXPENDITURES, AND CHANGES IN FUND BALANCES - GOVERNMENTAL FUNDS",
}

// Title returns the printed statement title.
func (k Kind) Title() string { return titles[k] }

// Column names an amount column of a line.
type Column string

const (
	ColumnAmount             Column = "amount"
	ColumnGeneralFund        Column = "general_fund"
	ColumnNonMajorFunds      Column = "non_major_funds"
	ColumnExpenses           Column = "expenses"
	ColumnChargesForServices Column = "charges_for_services"
	ColumnOperatingGrants    Column = "operating_grants"
	ColumnNetExpenseRevenue  Column = "net_expense_revenue"
)

// LineItem is a single-amount statement line.
type LineItem struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// FundLineItem is a line with one amount per governmental fund column.
type FundLineItem struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	GeneralFund   decimal.Decimal `json:"general_fund"`
	NonMajorFunds decimal.Decimal `json:"non_major_funds"`
}

// Total returns the sum of both fund columns.
func (f FundLineItem) Total() decimal.Decimal {
	return f.GeneralFund.Add(f.NonMajorFunds)
}

// ProgramLine is one function row of the Statement of Activities.
type ProgramLine struct {
	Key                string          `json:"-"`
	Code               string          `json:"code"`
	Description        string          `json:"description"`
	Expenses           decimal.Decimal `json:"expenses"`
	ChargesForServices decimal.Decimal `json:"charges_for_services"`
	OperatingGrants    decimal.Decimal `json:"operating_grants"`
	NetExpenseRevenue  decimal.Decimal `json:"net_expense_revenue"`
}

// FunctionLine is one function row of fund expenditures.
type FunctionLine struct {
	Key string `json:"-"`
	FundLineItem
}

// BalanceValidation annotates a statement with its accounting equation check.
type BalanceValidation struct {
	LeftSide   decimal.Decimal `json:"left_side"`
	RightSide  decimal.Decimal `json:"right_side"`
	Difference decimal.Decimal `json:"difference"`
	Balanced   bool            `json:"balanced"`
	Tolerance  decimal.Decimal `json:"tolerance"`
}

// Sum adds line amounts.
func Sum(items ...LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// SumFunds adds fund lines column by column into a line described by def.
func SumFunds(def FundLineItem, items ...FundLineItem) FundLineItem {
	def.GeneralFund, def.NonMajorFunds = decimal.Zero, decimal.Zero
	for _, it := range items {
		def.GeneralFund = def.GeneralFund.Add(it.GeneralFund)
		def.NonMajorFunds = def.NonMajorFunds.Add(it.NonMajorFunds)
	}
	return def
}

// Statements bundles the four generated statements.
type Statements struct {
	NetPosition          NetPosition          `json:"net_position"`
	Activities           Activities           `json:"activities"`
	BalanceSheet         BalanceSheet         `json:"balance_sheet"`
	RevenuesExpenditures RevenuesExpenditures `json:"revenues_expenditures"`
}

// Recompute recomputes every derived line of all four statements.
func (s *Statements) Recompute() {
	s.NetPosition.Recompute()
	s.Activities.Recompute()
	s.BalanceSheet.Recompute()
	s.RevenuesExpenditures.Recompute()
}
