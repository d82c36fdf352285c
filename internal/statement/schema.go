package statement

import "fmt"

// LineDef is the fixed code and description of one statement line.
// Path is the dotted JSON path of the line inside its statement.
type LineDef struct {
	Path        string
	Code        string
	Description string
}

// Item returns a single-amount line for d.
func (d LineDef) Item() LineItem {
	return LineItem{Code: d.Code, Description: d.Description}
}

// FundItem returns an empty fund-column line for d.
func (d LineDef) FundItem() FundLineItem {
	return FundLineItem{Code: d.Code, Description: d.Description}
}

// Function is one district function row shared by the activity and
// expenditure statements.
type Function struct {
	Key         string
	Code        string
	Description string
}

// Programs are the Statement of Activities rows keyed by two-digit function code.
var Programs = []Function{
	{"instruction", "11", "Instruction"},
	{"instructional_resources", "12", "Instructional Resources and Media Services"},
	{"curriculum_staff_dev", "13", "Curriculum and Staff Development"},
	{"instructional_leadership", "21", "Instructional Leadership"},
	{"school_leadership", "23", "School Leadership"},
	{"guidance_counseling", "31", "Guidance, Counseling, and Evaluation Services"},
	{"social_work", "32", "Social Work Services"},
	{"health_services", "33", "Health Services"},
	{"student_transportation", "34", "Student Transportation"},
	{"food_service", "35", "Food Service"},
	{"cocurricular", "36", "Cocurricular/Extracurricular Activities"},
	{"general_admin", "41", "General Administration"},
	{"facilities_maintenance", "51", "Facilities Maintenance and Operations"},
	{"security_monitoring", "52", "Security and Monitoring Services"},
	{"data_processing", "53", "Data Processing Services"},
	{"community_services", "61", "Community Services"},
	{"interest_long_term_debt", "72", "Interest on Long-term Debt"},
	{"bond_issuance_costs", "73", "Bond Issuance Costs and Fees"},
	{"capital_outlay", "81", "Capital Outlay"},
	{"shared_services", "93", "Payments Related to Shared Services Arrangements"},
	{"other_intergovernmental", "99", "Other Intergovernmental Charges"},
}

// ExpenditureFunctions are the fund expenditure rows. Codes carry the
// "00" control prefix used on fund statements.
var ExpenditureFunctions = []Function{
	{"instruction", "0011", "Instruction"},
	{"instructional_resources", "0012", "Instructional Resources and Media Services"},
	{"curriculum_staff_dev", "0013", "Curriculum and Staff Development"},
	{"instructional_leadership", "0021", "Instructional Leadership"},
	{"school_leadership", "0023", "School Leadership"},
	{"guidance_counseling", "0031", "Guidance, Counseling, and Evaluation Services"},
	{"social_work", "0032", "Social Work Services"},
	{"health_services", "0033", "Health Services"},
	{"student_transportation", "0034", "Student Transportation"},
	{"food_service", "0035", "Food Service"},
	{"cocurricular", "0036", "Cocurricular/Extracurricular Activities"},
	{"general_admin", "0041", "General Administration"},
	{"facilities_maintenance", "0051", "Facilities Maintenance and Operations"},
	{"security_monitoring", "0052", "Security and Monitoring Services"},
	{"data_processing", "0053", "Data Processing Services"},
	{"community_services", "0061", "Community Services"},
	{"principal_long_term_debt", "0071", "Principal on Long-term Debt"},
	{"interest_long_term_debt", "0072", "Interest on Long-term Debt"},
	{"bond_issuance_costs", "0073", "Bond Issuance Costs and Fees"},
	{"capital_outlay", "0081", "Capital Outlay"},
	{"shared_service_arrangements", "0093", "Payments to Shared Service Arrangements"},
	{"other_intergovernmental", "0099", "Other Intergovernmental Charges"},
}

var netPositionLines = []LineDef{
	{"assets.current_assets.cash_and_cash_equivalents", "1110", "Cash and Cash Equivalents"},
	{"assets.current_assets.property_taxes_receivable", "1225", "Property Taxes Receivable (Net)"},
	{"assets.current_assets.due_from_other_governments", "1240", "Due from Other Governments"},
	{"assets.current_assets.due_from_fiduciary", "1267", "Due from Fiduciary"},
	{"assets.current_assets.other_receivables", "1290", "Other Receivables (Net)"},
	{"assets.current_assets.inventories", "1300", "Inventories"},
	{"assets.current_assets.unrealized_expenses", "1410", "Unrealized Expenses"},
	{"assets.current_assets.total_current_assets", "", "Total Current Assets"},
	{"assets.capital_assets.land", "1510", "Land"},
	{"assets.capital_assets.buildings_improvements", "1520", "Buildings and Improvements, Net"},
	{"assets.capital_assets.furniture_equipment", "1530", "Furniture and Equipment, Net"},
	{"assets.capital_assets.construction_in_progress", "1580", "Construction in Progress"},
	{"assets.capital_assets.total_capital_assets", "", "Total Capital Assets"},
	{"assets.total_assets", "1000", "Total Assets"},
	{"deferred_outflows.deferred_charge_refunding", "1701", "Deferred Charge for Refunding"},
	{"deferred_outflows.deferred_outflow_pensions", "1705", "Deferred Outflow Related to Pensions"},
	{"deferred_outflows.deferred_outflow_opeb", "1706", "Deferred Outflow Related to OPEB"},
	{"deferred_outflows.total_deferred_outflows", "1700", "Total Deferred Outflows of Resources"},
	{"liabilities.current_liabilities.accounts_payable", "2110", "Accounts Payable"},
	{"liabilities.current_liabilities.interest_payable", "2140", "Interest Payable"},
	{"liabilities.current_liabilities.accrued_liabilities", "2165", "Accrued Liabilities"},
	{"liabilities.current_liabilities.due_to_other_governments", "2180", "Due to Other Governments"},
	{"liabilities.current_liabilities.unearned_revenue", "2300", "Unearned Revenue"},
	{"liabilities.current_liabilities.total_current_liabilities", "", "Total Current Liabilities"},
	{"liabilities.noncurrent_liabilities.due_within_one_year", "2501", "Due Within One Year"},
	{"liabilities.noncurrent_liabilities.due_more_than_one_year", "2502", "Due in More Than One Year"},
	{"liabilities.noncurrent_liabilities.net_pension_liability", "2540", "Net Pension Liability"},
	{"liabilities.noncurrent_liabilities.net_opeb_liability", "2545", "Net OPEB Liability"},
	{"liabilities.noncurrent_liabilities.total_noncurrent_liabilities", "", "Total Noncurrent Liabilities"},
	{"liabilities.total_liabilities", "2000", "Total Liabilities"},
	{"deferred_inflows.deferred_inflow_pensions", "2605", "Deferred Inflow Related to Pensions"},
	{"deferred_inflows.deferred_inflow_opeb", "2606", "Deferred Inflow Related to OPEB"},
	{"deferred_inflows.total_deferred_inflows", "2600", "Total Deferred Inflows of Resources"},
	{"net_position.net_investment_in_capital_assets", "3200", "Net Investment in Capital Assets"},
	{"net_position.restricted.state_federal_programs", "3820", "State and Federal Programs"},
	{"net_position.restricted.debt_service", "3850", "Debt Service"},
	{"net_position.restricted.total_restricted", "", "Total Restricted"},
	{"net_position.unrestricted", "3900", "Unrestricted"},
	{"net_position.total_net_position", "3000", "Total Net Position"},
}

var activitiesLines = []LineDef{
	{"governmental_activities.total_governmental", "TG", "Total Governmental Activities"},
	{"governmental_activities.total_primary", "TP", "Total Primary Government"},
	{"general_revenues.property_taxes_general", "MT", "Property Taxes, Levied for General Purposes"},
	{"general_revenues.property_taxes_debt", "DT", "Property Taxes, Levied for Debt Service"},
	{"general_revenues.chapter_313_payments", "", "Chapter 313 Payments"},
	{"general_revenues.investment_earnings", "IE", "Investment Earnings"},
	{"general_revenues.grants_contributions", "GC", "Grants and Contributions Not Restricted to Specific Programs"},
	{"general_revenues.miscellaneous", "MI", "Miscellaneous"},
	{"general_revenues.total_general_revenues", "TR", "Total General Revenues and Transfers"},
	{"net_position.change_in_net_position", "CN", "Change in Net Position"},
	{"net_position.net_position_beginning", "NB", "Net Position - Beginning"},
	{"net_position.net_position_ending", "NE", "Net Position - Ending"},
}

var balanceSheetLines = []LineDef{
	{"assets.cash_and_equivalents", "1110", "Cash and Cash Equivalents"},
	{"assets.taxes_receivable", "1225", "Taxes Receivable, Net"},
	{"assets.due_from_other_governments", "1240", "Due from Other Governments"},
	{"assets.due_from_other_funds", "1260", "Due from Other Funds"},
	{"assets.other_receivables", "1290", "Other Receivables"},
	{"assets.inventories", "1300", "Inventories"},
	{"assets.unrealized_expenditures", "1410", "Unrealized Expenditures"},
	{"assets.total_assets", "1000", "Total Assets"},
	{"liabilities.accounts_payable", "2110", "Accounts Payable"},
	{"liabilities.payroll_deductions", "2150", "Payroll Deductions and Withholdings"},
	{"liabilities.accrued_wages", "2160", "Accrued Wages Payable"},
	{"liabilities.due_to_other_funds", "2170", "Due to Other Funds"},
	{"liabilities.due_to_other_governments", "2180", "Due to Other Governments"},
	{"liabilities.unearned_revenue", "2300", "Unearned Revenue"},
	{"liabilities.total_liabilities", "2000", "Total Liabilities"},
	{"deferred_inflows.unavailable_revenue_property_taxes", "2601", "Unavailable Revenue - Property Taxes"},
	{"deferred_inflows.total_deferred_inflows", "2600", "Total Deferred Inflows of Resources"},
	{"fund_balances.nonspendable.inventories", "3410", "Inventories"},
	{"fund_balances.nonspendable.prepaid_items", "3430", "Prepaid Items"},
	{"fund_balances.restricted.federal_state_funds", "3450", "Federal/State Funds Grant Restrictions"},
	{"fund_balances.restricted.retirement_long_term_debt", "3480", "Retirement of Long-Term Debt"},
	{"fund_balances.restricted.other_restrictions", "3490", "Other Restrictions of Fund Balance"},
	{"fund_balances.committed.construction", "3510", "Construction"},
	{"fund_balances.committed.other_committed", "3545", "Other Committed Fund Balance"},
	{"fund_balances.assigned.other_assigned", "3590", "Other Assigned Fund Balance"},
	{"fund_balances.unassigned", "3600", "Unassigned"},
	{"fund_balances.total_fund_balances", "3000", "Total Fund Balances"},
	{"total_liabilities_deferred_fund_balances", "4000", "Total Liabilities, Deferred Inflow of Resources and Fund Balances"},
}

var revenuesExpendituresLines = []LineDef{
	{"revenues.local_intermediate_sources", "5700", "Local and Intermediate Sources"},
	{"revenues.state_program_revenues", "5800", "State Program Revenues"},
	{"revenues.federal_program_revenues", "5900", "Federal Program Revenues"},
	{"revenues.total_revenues", "5020", "Total Revenues"},
	{"expenditures.total_expenditures", "6030", "Total Expenditures"},
	{"excess_deficiency", "1100", "Excess (Deficiency) of Revenues Over (Under) Expenditures"},
	{"other_financing.sale_property", "7912", "Sale of Real or Personal Property"},
	{"other_financing.transfers_in", "7915", "Transfers In"},
	{"other_financing.premium_bond_remarketing", "7916", "Premium on Bond Remarketing"},
	{"other_financing.other_resources", "7949", "Other Resources"},
	{"other_financing.transfers_out", "8911", "Transfers Out"},
	{"other_financing.total_other_financing", "7080", "Total Other Financing Sources and (Uses)"},
	{"net_change", "1200", "Net Change in Fund Balances"},
	{"fund_balances.beginning", "0100", "Fund Balances - Beginning"},
	{"fund_balances.ending", "3000", "Fund Balances - Ending"},
}

var schemas = map[Kind]map[string]LineDef{}

func init() {
	add := func(k Kind, defs []LineDef) {
		m := make(map[string]LineDef, len(defs))
		for _, d := range defs {
			m[d.Path] = d
		}
		schemas[k] = m
	}
	programs := make([]LineDef, 0, len(Programs))
	for _, f := range Programs {
		programs = append(programs, LineDef{"governmental_activities." + f.Key, f.Code, f.Description})
	}
	functions := make([]LineDef, 0, len(ExpenditureFunctions))
	for _, f := range ExpenditureFunctions {
		functions = append(functions, LineDef{"expenditures.current." + f.Key, f.Code, f.Description})
	}

	add(KindNetPosition, netPositionLines)
	add(KindActivities, append(programs, activitiesLines...))
	add(KindBalanceSheet, balanceSheetLines)
	add(KindRevenuesExpenditures, append(functions, revenuesExpendituresLines...))
}

// Lookup returns the line definition at path in statement k.
func Lookup(k Kind, path string) (LineDef, bool) {
	d, ok := schemas[k][path]
	return d, ok
}

// Def is Lookup for paths known at compile time. It panics on an unknown path.
func Def(k Kind, path string) LineDef {
	d, ok := Lookup(k, path)
	if !ok {
		panic(fmt.Sprintf("statement: no line %q on %s", path, k))
	}
	return d
}

// ProgramByCode returns the activities row for a two-digit function code.
func ProgramByCode(code string) (Function, bool) {
	return functionByCode(Programs, code)
}

// ExpenditureByFunction returns the expenditure row for a two-digit function code.
func ExpenditureByFunction(code string) (Function, bool) {
	return functionByCode(ExpenditureFunctions, "00"+code)
}

func functionByCode(fs []Function, code string) (Function, bool) {
	for _, f := range fs {
		if f.Code == code {
			return f, true
		}
	}
	return Function{}, false
}
