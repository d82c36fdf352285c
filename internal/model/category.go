package model

import (
	"fmt"
	"strings"
)

// ReportingCategory is the coarse TEA reporting bucket for an account.
type ReportingCategory string

const (
	ReportingAssets          ReportingCategory = "Assets"
	ReportingLiabilities     ReportingCategory = "Liabilities"
	ReportingFundBalance     ReportingCategory = "Fund Balances/Net Position"
	ReportingClearing        ReportingCategory = "Clearing Accounts"
	ReportingRevenues        ReportingCategory = "Revenues"
	ReportingExpenditures    ReportingCategory = "Expenditures/Expenses"
	ReportingOtherResources  ReportingCategory = "Other Resources/Non-operating Revenues"
	ReportingOtherUses       ReportingCategory = "Other Uses/Non-operating Expenses"
	ReportingUnknown         ReportingCategory = "Unknown"
)

// ReportingCategories lists every known reporting category, Unknown last.
var ReportingCategories = []ReportingCategory{
	ReportingAssets,
	ReportingLiabilities,
	ReportingFundBalance,
	ReportingClearing,
	ReportingRevenues,
	ReportingExpenditures,
	ReportingOtherResources,
	ReportingOtherUses,
	ReportingUnknown,
}

// ParseReportingCategory matches s case-insensitively against the known categories.
func ParseReportingCategory(s string) (ReportingCategory, error) {
	for _, c := range ReportingCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return ReportingUnknown, fmt.Errorf("unknown reporting category %q", s)
}

// SecondaryCategory is the finer GASB bucket that drives statement placement.
type SecondaryCategory string

const (
	CurrentAssets                SecondaryCategory = "current_assets"
	CapitalAssets                SecondaryCategory = "capital_assets"
	DeferredOutflows             SecondaryCategory = "deferred_outflows"
	CurrentLiabilities           SecondaryCategory = "current_liabilities"
	LongTermLiabilities          SecondaryCategory = "long_term_liabilities"
	DeferredInflows              SecondaryCategory = "deferred_inflows"
	NetInvestmentInCapitalAssets SecondaryCategory = "net_investment_in_capital_assets"
	RestrictedNetPosition        SecondaryCategory = "restricted_net_position"
	UnrestrictedNetPosition      SecondaryCategory = "unrestricted_net_position"
	ProgramRevenues              SecondaryCategory = "program_revenues"
	GeneralRevenues              SecondaryCategory = "general_revenues"
	ProgramExpenses              SecondaryCategory = "program_expenses"
	GeneralExpenses              SecondaryCategory = "general_expenses"
	OtherResources               SecondaryCategory = "other_resources"
	OtherUses                    SecondaryCategory = "other_uses"
	ClearingAccounts             SecondaryCategory = "clearing_accounts"
	SecondaryUnknown             SecondaryCategory = "unknown"
)

type secondaryInfo struct {
	display   string
	reporting ReportingCategory
}

var secondaryInfos = map[SecondaryCategory]secondaryInfo{
	CurrentAssets:                {"Current Assets", ReportingAssets},
	CapitalAssets:                {"Capital Assets", ReportingAssets},
	DeferredOutflows:             {"Deferred Outflows of Resources", ReportingAssets},
	CurrentLiabilities:           {"Current Liabilities", ReportingLiabilities},
	LongTermLiabilities:          {"Long-term Liabilities", ReportingLiabilities},
	DeferredInflows:              {"Deferred Inflows of Resources", ReportingLiabilities},
	NetInvestmentInCapitalAssets: {"Net Investment in Capital Assets", ReportingFundBalance},
	RestrictedNetPosition:        {"Restricted Net Position", ReportingFundBalance},
	UnrestrictedNetPosition:      {"Unrestricted Net Position", ReportingFundBalance},
	ProgramRevenues:              {"Program Revenues", ReportingRevenues},
	GeneralRevenues:              {"General Revenues", ReportingRevenues},
	ProgramExpenses:              {"Program Expenses", ReportingExpenditures},
	GeneralExpenses:              {"General Expenses", ReportingExpenditures},
	OtherResources:               {"Other Resources", ReportingOtherResources},
	OtherUses:                    {"Other Uses", ReportingOtherUses},
	ClearingAccounts:             {"Clearing Accounts", ReportingClearing},
	SecondaryUnknown:             {"Unknown", ReportingUnknown},
}

// SecondaryCategories lists every secondary category in statement order, unknown last.
var SecondaryCategories = []SecondaryCategory{
	CurrentAssets,
	CapitalAssets,
	DeferredOutflows,
	CurrentLiabilities,
	LongTermLiabilities,
	DeferredInflows,
	NetInvestmentInCapitalAssets,
	RestrictedNetPosition,
	UnrestrictedNetPosition,
	ProgramRevenues,
	GeneralRevenues,
	ProgramExpenses,
	GeneralExpenses,
	OtherResources,
	OtherUses,
	ClearingAccounts,
	SecondaryUnknown,
}

// DisplayName returns the human label, e.g. "Capital Assets".
func (c SecondaryCategory) DisplayName() string {
	if info, ok := secondaryInfos[c]; ok {
		return info.display
	}
	return "Unknown"
}

// Reporting returns the reporting category the secondary category belongs to.
func (c SecondaryCategory) Reporting() ReportingCategory {
	if info, ok := secondaryInfos[c]; ok {
		return info.reporting
	}
	return ReportingUnknown
}

// IsKnown reports whether c is a mapped, non-unknown category.
func (c SecondaryCategory) IsKnown() bool {
	_, ok := secondaryInfos[c]
	return ok && c != SecondaryUnknown
}

// ParseSecondaryCategory accepts either the key ("capital_assets") or the display name.
func ParseSecondaryCategory(s string) (SecondaryCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range SecondaryCategories {
		if strings.EqualFold(string(c), s) || strings.EqualFold(c.DisplayName(), s) {
			return c, nil
		}
	}
	return SecondaryUnknown, fmt.Errorf("unknown secondary category %q", s)
}

// FundCategory groups fund codes into GASB fund types.
type FundCategory string

const (
	FundGeneral           FundCategory = "general_fund"
	FundSpecialRevenue    FundCategory = "special_revenue"
	FundDebtService       FundCategory = "debt_service"
	FundCapitalProjects   FundCategory = "capital_projects"
	FundEnterprise        FundCategory = "enterprise"
	FundInternalService   FundCategory = "internal_service"
	FundTrustAndAgency    FundCategory = "trust_and_agency"
	FundOtherGovernmental FundCategory = "other_governmental"
)

// FundCategories lists every fund category.
var FundCategories = []FundCategory{
	FundGeneral,
	FundSpecialRevenue,
	FundDebtService,
	FundCapitalProjects,
	FundEnterprise,
	FundInternalService,
	FundTrustAndAgency,
	FundOtherGovernmental,
}

// ParseFundCategory matches s case-insensitively against the known fund categories.
func ParseFundCategory(s string) (FundCategory, error) {
	for _, c := range FundCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return FundOtherGovernmental, fmt.Errorf("unknown fund category %q", s)
}

// MappingMethod records how a classification was produced.
type MappingMethod string

const (
	MappingAutomatic MappingMethod = "automatic"
	MappingManual    MappingMethod = "manual"
)

// ParseMappingMethod parses "automatic" or "manual".
func ParseMappingMethod(s string) (MappingMethod, error) {
	switch MappingMethod(strings.ToLower(strings.TrimSpace(s))) {
	case MappingAutomatic:
		return MappingAutomatic, nil
	case MappingManual:
		return MappingManual, nil
	}
	return "", fmt.Errorf("unknown mapping method %q", s)
}
