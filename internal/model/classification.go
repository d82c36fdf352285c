package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStatementLine is the placeholder line code for accounts without an explicit line.
const DefaultStatementLine = "XX"

// TrialBalanceRow is one account balance from a trial balance export.
type TrialBalanceRow struct {
	AccountCode       string
	Description       string
	CurrentYearActual decimal.Decimal
	Budget            decimal.Decimal
	PriorYearActual   decimal.Decimal
}

// AccountClassification is the resolved mapping of one account code.
type AccountClassification struct {
	AccountCode       string            `json:"account_code"`
	Description       string            `json:"description"`
	ReportingCategory ReportingCategory `json:"reporting_category"`
	SecondaryCategory SecondaryCategory `json:"secondary_category"`
	FundCategory      FundCategory      `json:"fund_category"`
	StatementLineCode string            `json:"statement_line_code"`
	Notes             string            `json:"notes"`
	MappingMethod     MappingMethod     `json:"mapping_method"`
	Confidence        decimal.Decimal   `json:"confidence"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Mapped reports whether the classification can be placed on a statement.
func (c AccountClassification) Mapped() bool {
	return c.SecondaryCategory.IsKnown() && c.ReportingCategory != ReportingUnknown && c.ReportingCategory != ""
}

// IsManual reports whether the classification was set by a person.
func (c AccountClassification) IsManual() bool {
	return c.MappingMethod == MappingManual
}

// Classifications is a keyed snapshot of account classifications.
type Classifications map[string]AccountClassification
