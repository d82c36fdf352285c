package rollup

import (
	"strings"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/statement"
)

// Placement is where one trial balance row lands on one statement.
type Placement struct {
	Statement   statement.Kind
	Section     string
	Path        string
	Column      statement.Column
	Code        string
	Description string
	// Negate flips the presented amount.
	Negate bool
	// Rollup is set when the row shares a line whose code differs from its object.
	Rollup bool
	// Override is set when the stored statement line code chose the line.
	Override bool
}

type match int

const (
	matchExact match = iota
	matchPrefix
	matchFallback
	matchOverride
)

type prefixLine struct {
	prefix string
	path   string
}

// section routes an object code to one line of a statement section.
// Resolution order: stored line override, exact line code, explicit object,
// longest listed prefix, fallback.
type section struct {
	name     string
	lines    []string
	objects  map[string]string
	prefixes []prefixLine
	fallback string
	exclude  map[string]bool
	negate   bool
}

func (s section) resolve(k statement.Kind, object, lineCode string) (statement.LineDef, match, bool) {
	if s.exclude[object] {
		return statement.LineDef{}, 0, false
	}
	if lineCode != "" && lineCode != model.DefaultStatementLine {
		for _, p := range s.lines {
			d := statement.Def(k, p)
			if strings.EqualFold(d.Code, lineCode) || strings.EqualFold(lastKey(p), lineCode) {
				return d, matchOverride, true
			}
		}
	}
	for _, p := range s.lines {
		if d := statement.Def(k, p); d.Code == object {
			return d, matchExact, true
		}
	}
	if p, ok := s.objects[object]; ok {
		return statement.Def(k, p), matchExact, true
	}
	for _, pl := range s.prefixes {
		if strings.HasPrefix(object, pl.prefix) {
			return statement.Def(k, pl.path), matchPrefix, true
		}
	}
	return statement.Def(k, s.fallback), matchFallback, true
}

func (s section) place(k statement.Kind, col statement.Column, object, lineCode string) (Placement, bool) {
	d, m, ok := s.resolve(k, object, lineCode)
	if !ok {
		return Placement{}, false
	}
	return Placement{
		Statement:   k,
		Section:     s.name,
		Path:        d.Path,
		Column:      col,
		Code:        d.Code,
		Description: d.Description,
		Negate:      s.negate,
		Rollup:      isRollup(m, d.Code, object),
		Override:    m == matchOverride,
	}, true
}

func isRollup(m match, code, object string) bool {
	switch m {
	case matchFallback:
		return true
	case matchPrefix:
		return code != object
	}
	return false
}

func lastKey(path string) string {
	return path[strings.LastIndex(path, ".")+1:]
}

const (
	npCurrent  = "assets.current_assets."
	npCapital  = "assets.capital_assets."
	npDO       = "deferred_outflows."
	npCurLiab  = "liabilities.current_liabilities."
	npLongLiab = "liabilities.noncurrent_liabilities."
	npDI       = "deferred_inflows."
	npEquity   = "net_position."
)

var netPositionRoutes = map[model.SecondaryCategory]section{
	model.CurrentAssets: {
		name: "Assets",
		lines: []string{
			npCurrent + "cash_and_cash_equivalents", npCurrent + "property_taxes_receivable",
			npCurrent + "due_from_other_governments", npCurrent + "due_from_fiduciary",
			npCurrent + "other_receivables", npCurrent + "inventories", npCurrent + "unrealized_expenses",
		},
		prefixes: []prefixLine{
			{"11", npCurrent + "cash_and_cash_equivalents"},
			{"13", npCurrent + "inventories"},
			{"14", npCurrent + "unrealized_expenses"},
		},
		fallback: npCurrent + "other_receivables",
	},
	model.CapitalAssets: {
		name: "Assets",
		lines: []string{
			npCapital + "land", npCapital + "buildings_improvements",
			npCapital + "furniture_equipment", npCapital + "construction_in_progress",
		},
		fallback: npCapital + "buildings_improvements",
	},
	model.DeferredOutflows: {
		name:     "Deferred Outflows of Resources",
		lines:    []string{npDO + "deferred_charge_refunding", npDO + "deferred_outflow_pensions", npDO + "deferred_outflow_opeb"},
		fallback: npDO + "deferred_charge_refunding",
	},
	model.CurrentLiabilities: {
		name: "Liabilities",
		lines: []string{
			npCurLiab + "accounts_payable", npCurLiab + "interest_payable", npCurLiab + "accrued_liabilities",
			npCurLiab + "due_to_other_governments", npCurLiab + "unearned_revenue",
		},
		fallback: npCurLiab + "accounts_payable",
	},
	model.LongTermLiabilities: {
		name: "Liabilities",
		lines: []string{
			npLongLiab + "due_within_one_year", npLongLiab + "due_more_than_one_year",
			npLongLiab + "net_pension_liability", npLongLiab + "net_opeb_liability",
		},
		fallback: npLongLiab + "due_more_than_one_year",
	},
	model.DeferredInflows: {
		name:     "Deferred Inflows of Resources",
		lines:    []string{npDI + "deferred_inflow_pensions", npDI + "deferred_inflow_opeb"},
		fallback: npDI + "deferred_inflow_pensions",
	},
	model.NetInvestmentInCapitalAssets: {
		name:     "Net Position",
		lines:    []string{npEquity + "net_investment_in_capital_assets"},
		fallback: npEquity + "net_investment_in_capital_assets",
	},
	model.RestrictedNetPosition: {
		name:     "Net Position",
		lines:    []string{npEquity + "restricted.state_federal_programs", npEquity + "restricted.debt_service"},
		fallback: npEquity + "restricted.state_federal_programs",
	},
	model.UnrestrictedNetPosition: {
		name:     "Net Position",
		lines:    []string{npEquity + "unrestricted"},
		fallback: npEquity + "unrestricted",
	},
}

const grPrefix = "general_revenues."

var generalRevenueRoute = section{
	name: "General Revenues",
	lines: []string{
		grPrefix + "property_taxes_general", grPrefix + "property_taxes_debt", grPrefix + "chapter_313_payments",
		grPrefix + "investment_earnings", grPrefix + "grants_contributions", grPrefix + "miscellaneous",
	},
	objects: map[string]string{
		"5711": grPrefix + "property_taxes_general",
		"5712": grPrefix + "property_taxes_debt",
	},
	prefixes: []prefixLine{
		{"574", grPrefix + "investment_earnings"},
		{"58", grPrefix + "grants_contributions"},
		{"59", grPrefix + "grants_contributions"},
	},
	fallback: grPrefix + "miscellaneous",
}

var balanceSheetRoutes = map[model.SecondaryCategory]section{
	model.CurrentAssets: {
		name: "Assets",
		lines: []string{
			"assets.cash_and_equivalents", "assets.taxes_receivable", "assets.due_from_other_governments",
			"assets.due_from_other_funds", "assets.other_receivables", "assets.inventories",
			"assets.unrealized_expenditures",
		},
		prefixes: []prefixLine{
			{"11", "assets.cash_and_equivalents"},
			{"13", "assets.inventories"},
			{"14", "assets.unrealized_expenditures"},
		},
		fallback: "assets.other_receivables",
	},
	model.CurrentLiabilities: {
		name: "Liabilities",
		lines: []string{
			"liabilities.accounts_payable", "liabilities.payroll_deductions", "liabilities.accrued_wages",
			"liabilities.due_to_other_funds", "liabilities.due_to_other_governments", "liabilities.unearned_revenue",
		},
		fallback: "liabilities.accounts_payable",
	},
	// Pension and OPEB deferrals are reported government-wide only.
	model.DeferredInflows: {
		name:     "Deferred Inflows of Resources",
		lines:    []string{"deferred_inflows.unavailable_revenue_property_taxes"},
		fallback: "deferred_inflows.unavailable_revenue_property_taxes",
		exclude:  map[string]bool{"2605": true, "2606": true},
	},
	model.RestrictedNetPosition: fundBalanceRoute,
	model.UnrestrictedNetPosition: {
		name:     "Fund Balances",
		lines:    []string{"fund_balances.unassigned"},
		fallback: "fund_balances.unassigned",
	},
}

var fundBalanceRoute = section{
	name: "Fund Balances",
	lines: []string{
		"fund_balances.nonspendable.inventories", "fund_balances.nonspendable.prepaid_items",
		"fund_balances.restricted.federal_state_funds", "fund_balances.restricted.retirement_long_term_debt",
		"fund_balances.restricted.other_restrictions",
		"fund_balances.committed.construction", "fund_balances.committed.other_committed",
		"fund_balances.assigned.other_assigned",
		"fund_balances.unassigned",
	},
	prefixes: []prefixLine{
		{"34", "fund_balances.restricted.other_restrictions"},
		{"35", "fund_balances.assigned.other_assigned"},
		{"36", "fund_balances.unassigned"},
	},
	fallback: "fund_balances.restricted.other_restrictions",
}

var revenueRoute = section{
	name:  "Revenues",
	lines: []string{"revenues.local_intermediate_sources", "revenues.state_program_revenues", "revenues.federal_program_revenues"},
	prefixes: []prefixLine{
		{"57", "revenues.local_intermediate_sources"},
		{"58", "revenues.state_program_revenues"},
		{"59", "revenues.federal_program_revenues"},
	},
	fallback: "revenues.local_intermediate_sources",
}

var otherResourcesRoute = section{
	name: "Other Financing Sources (Uses)",
	lines: []string{
		"other_financing.sale_property", "other_financing.transfers_in",
		"other_financing.premium_bond_remarketing", "other_financing.other_resources",
	},
	fallback: "other_financing.other_resources",
}

var otherUsesRoute = section{
	name:     "Other Financing Sources (Uses)",
	lines:    []string{"other_financing.transfers_out"},
	fallback: "other_financing.transfers_out",
	negate:   true,
}

// Place lists every statement a classified row is reported on, the
// government-wide statement first. Unmapped rows and clearing accounts have
// no placement.
func Place(c model.AccountClassification, seg acctcode.Segments) []Placement {
	if !c.Mapped() || c.SecondaryCategory == model.ClearingAccounts {
		return nil
	}
	var out []Placement
	for _, fn := range []func(model.AccountClassification, acctcode.Segments) (Placement, bool){
		placeNetPosition, placeActivities, placeBalanceSheet, placeRevenuesExpenditures,
	} {
		if p, ok := fn(c, seg); ok {
			out = append(out, p)
		}
	}
	return out
}

func placeNetPosition(c model.AccountClassification, seg acctcode.Segments) (Placement, bool) {
	s, ok := netPositionRoutes[c.SecondaryCategory]
	if !ok {
		return Placement{}, false
	}
	return s.place(statement.KindNetPosition, statement.ColumnAmount, seg.Object, c.StatementLineCode)
}

func placeActivities(c model.AccountClassification, seg acctcode.Segments) (Placement, bool) {
	switch c.SecondaryCategory {
	case model.ProgramExpenses, model.GeneralExpenses:
		return programPlacement(seg, "general_admin", statement.ColumnExpenses), true
	case model.ProgramRevenues:
		col := statement.ColumnOperatingGrants
		if strings.HasPrefix(seg.Object, "51") {
			col = statement.ColumnChargesForServices
		}
		return programPlacement(seg, "instruction", col), true
	case model.GeneralRevenues:
		return generalRevenueRoute.place(statement.KindActivities, statement.ColumnAmount, seg.Object, c.StatementLineCode)
	}
	return Placement{}, false
}

func programPlacement(seg acctcode.Segments, fallback string, col statement.Column) Placement {
	fn, ok := statement.ProgramByCode(seg.Function)
	if !ok {
		for _, p := range statement.Programs {
			if p.Key == fallback {
				fn = p
			}
		}
	}
	return Placement{
		Statement:   statement.KindActivities,
		Section:     "Governmental Activities",
		Path:        "governmental_activities." + fn.Key,
		Column:      col,
		Code:        fn.Code,
		Description: fn.Description,
		Rollup:      !ok,
	}
}

func placeBalanceSheet(c model.AccountClassification, seg acctcode.Segments) (Placement, bool) {
	s, ok := balanceSheetRoutes[c.SecondaryCategory]
	if !ok {
		return Placement{}, false
	}
	return s.place(statement.KindBalanceSheet, fundColumn(c.FundCategory), seg.Object, c.StatementLineCode)
}

func placeRevenuesExpenditures(c model.AccountClassification, seg acctcode.Segments) (Placement, bool) {
	col := fundColumn(c.FundCategory)
	k := statement.KindRevenuesExpenditures
	switch c.SecondaryCategory {
	case model.ProgramRevenues, model.GeneralRevenues:
		return revenueRoute.place(k, col, seg.Object, c.StatementLineCode)
	case model.ProgramExpenses, model.GeneralExpenses:
		fn, ok := statement.ExpenditureByFunction(seg.Function)
		if !ok {
			fn, _ = statement.ExpenditureByFunction("41")
		}
		return Placement{
			Statement:   k,
			Section:     "Expenditures",
			Path:        "expenditures.current." + fn.Key,
			Column:      col,
			Code:        fn.Code,
			Description: fn.Description,
			Rollup:      !ok,
		}, true
	case model.OtherResources:
		return otherResourcesRoute.place(k, col, seg.Object, c.StatementLineCode)
	case model.OtherUses:
		return otherUsesRoute.place(k, col, seg.Object, c.StatementLineCode)
	}
	return Placement{}, false
}

func fundColumn(f model.FundCategory) statement.Column {
	if f == model.FundGeneral {
		return statement.ColumnGeneralFund
	}
	return statement.ColumnNonMajorFunds
}
