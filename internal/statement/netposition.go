package statement

import "github.com/shopspring/decimal"

// NetPosition is the government-wide Statement of Net Position.
type NetPosition struct {
	Title             string                 `json:"title"`
	Assets            NetPositionAssets      `json:"assets"`
	DeferredOutflows  DeferredOutflows       `json:"deferred_outflows"`
	Liabilities       NetPositionLiabilities `json:"liabilities"`
	DeferredInflows   DeferredInflows        `json:"deferred_inflows"`
	NetPosition       NetPositionEquity      `json:"net_position"`
	BalanceValidation BalanceValidation      `json:"balance_validation"`
}

type NetPositionAssets struct {
	CurrentAssets CurrentAssets `json:"current_assets"`
	CapitalAssets CapitalAssets `json:"capital_assets"`
	TotalAssets   LineItem      `json:"total_assets"`
}

type CurrentAssets struct {
	CashAndCashEquivalents  LineItem `json:"cash_and_cash_equivalents"`
	PropertyTaxesReceivable LineItem `json:"property_taxes_receivable"`
	DueFromOtherGovernments LineItem `json:"due_from_other_governments"`
	DueFromFiduciary        LineItem `json:"due_from_fiduciary"`
	OtherReceivables        LineItem `json:"other_receivables"`
	Inventories             LineItem `json:"inventories"`
	UnrealizedExpenses      LineItem `json:"unrealized_expenses"`
	TotalCurrentAssets      LineItem `json:"total_current_assets"`
}

type CapitalAssets struct {
	Land                   LineItem `json:"land"`
	BuildingsImprovements  LineItem `json:"buildings_improvements"`
	FurnitureEquipment     LineItem `json:"furniture_equipment"`
	ConstructionInProgress LineItem `json:"construction_in_progress"`
	TotalCapitalAssets     LineItem `json:"total_capital_assets"`
}

type DeferredOutflows struct {
	DeferredChargeRefunding LineItem `json:"deferred_charge_refunding"`
	DeferredOutflowPensions LineItem `json:"deferred_outflow_pensions"`
	DeferredOutflowOPEB     LineItem `json:"deferred_outflow_opeb"`
	TotalDeferredOutflows   LineItem `json:"total_deferred_outflows"`
}

type NetPositionLiabilities struct {
	CurrentLiabilities    CurrentLiabilities    `json:"current_liabilities"`
	NoncurrentLiabilities NoncurrentLiabilities `json:"noncurrent_liabilities"`
	TotalLiabilities      LineItem              `json:"total_liabilities"`
}

type CurrentLiabilities struct {
	AccountsPayable         LineItem `json:"accounts_payable"`
	InterestPayable         LineItem `json:"interest_payable"`
	AccruedLiabilities      LineItem `json:"accrued_liabilities"`
	DueToOtherGovernments   LineItem `json:"due_to_other_governments"`
	UnearnedRevenue         LineItem `json:"unearned_revenue"`
	TotalCurrentLiabilities LineItem `json:"total_current_liabilities"`
}

type NoncurrentLiabilities struct {
	DueWithinOneYear           LineItem `json:"due_within_one_year"`
	DueMoreThanOneYear         LineItem `json:"due_more_than_one_year"`
	NetPensionLiability        LineItem `json:"net_pension_liability"`
	NetOPEBLiability           LineItem `json:"net_opeb_liability"`
	TotalNoncurrentLiabilities LineItem `json:"total_noncurrent_liabilities"`
}

type DeferredInflows struct {
	DeferredInflowPensions LineItem `json:"deferred_inflow_pensions"`
	DeferredInflowOPEB     LineItem `json:"deferred_inflow_opeb"`
	TotalDeferredInflows   LineItem `json:"total_deferred_inflows"`
}

type NetPositionEquity struct {
	NetInvestmentInCapitalAssets LineItem   `json:"net_investment_in_capital_assets"`
	Restricted                   Restricted `json:"restricted"`
	Unrestricted                 LineItem   `json:"unrestricted"`
	TotalNetPosition             LineItem   `json:"total_net_position"`
}

type Restricted struct {
	StateFederalPrograms LineItem `json:"state_federal_programs"`
	DebtService          LineItem `json:"debt_service"`
	TotalRestricted      LineItem `json:"total_restricted"`
}

// Recompute sets every total from its sibling lines.
func (s *NetPosition) Recompute() {
	ca := &s.Assets.CurrentAssets
	ca.TotalCurrentAssets.Amount = Sum(ca.CashAndCashEquivalents, ca.PropertyTaxesReceivable,
		ca.DueFromOtherGovernments, ca.DueFromFiduciary, ca.OtherReceivables, ca.Inventories, ca.UnrealizedExpenses)
	fixed := &s.Assets.CapitalAssets
	fixed.TotalCapitalAssets.Amount = Sum(fixed.Land, fixed.BuildingsImprovements, fixed.FurnitureEquipment, fixed.ConstructionInProgress)
	s.Assets.TotalAssets.Amount = Sum(ca.TotalCurrentAssets, fixed.TotalCapitalAssets)

	do := &s.DeferredOutflows
	do.TotalDeferredOutflows.Amount = Sum(do.DeferredChargeRefunding, do.DeferredOutflowPensions, do.DeferredOutflowOPEB)

	cl := &s.Liabilities.CurrentLiabilities
	cl.TotalCurrentLiabilities.Amount = Sum(cl.AccountsPayable, cl.InterestPayable, cl.AccruedLiabilities,
		cl.DueToOtherGovernments, cl.UnearnedRevenue)
	nl := &s.Liabilities.NoncurrentLiabilities
	nl.TotalNoncurrentLiabilities.Amount = Sum(nl.DueWithinOneYear, nl.DueMoreThanOneYear, nl.NetPensionLiability, nl.NetOPEBLiability)
	s.Liabilities.TotalLiabilities.Amount = Sum(cl.TotalCurrentLiabilities, nl.TotalNoncurrentLiabilities)

	di := &s.DeferredInflows
	di.TotalDeferredInflows.Amount = Sum(di.DeferredInflowPensions, di.DeferredInflowOPEB)

	np := &s.NetPosition
	np.Restricted.TotalRestricted.Amount = Sum(np.Restricted.StateFederalPrograms, np.Restricted.DebtService)
	np.TotalNetPosition.Amount = Sum(np.NetInvestmentInCapitalAssets, np.Restricted.TotalRestricted, np.Unrestricted)
}

// BalanceSides returns assets plus deferred outflows against liabilities,
// deferred inflows and net position.
func (s *NetPosition) BalanceSides() (left, right decimal.Decimal) {
	left = s.Assets.TotalAssets.Amount.Add(s.DeferredOutflows.TotalDeferredOutflows.Amount)
	right = s.Liabilities.TotalLiabilities.Amount.
		Add(s.DeferredInflows.TotalDeferredInflows.Amount).
		Add(s.NetPosition.TotalNetPosition.Amount)
	return left, right
}
