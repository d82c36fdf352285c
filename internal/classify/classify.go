package classify

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/model"
)

// Confidence levels assigned by Classify.
var (
	ConfidenceManual   = decimal.NewFromInt(1)
	ConfidenceTable    = decimal.RequireFromString("0.95")
	ConfidenceFallback = decimal.RequireFromString("0.60")
	ConfidenceNone     = decimal.Zero
)

// Override carries a previously stored classification. It wins only when
// both categories are present.
type Override struct {
	Reporting model.ReportingCategory
	Secondary model.SecondaryCategory
}

// Result is the outcome of classifying one account code.
type Result struct {
	Reporting  model.ReportingCategory
	Secondary  model.SecondaryCategory
	Fund       model.FundCategory
	Confidence decimal.Decimal
	Overridden bool
	Fallback   bool
}

// Classify resolves the categories for decoded segments. It never fails:
// undecodable segments yield Unknown categories.
func Classify(seg acctcode.Segments, override *Override) Result {
	fund := FundCategoryOf(seg)

	if override != nil && override.Reporting != "" && override.Secondary != "" {
		return Result{
			Reporting:  override.Reporting,
			Secondary:  override.Secondary,
			Fund:       fund,
			Confidence: ConfidenceManual,
			Overridden: true,
		}
	}

	if !seg.Valid {
		return Result{
			Reporting:  model.ReportingUnknown,
			Secondary:  model.SecondaryUnknown,
			Fund:       fund,
			Confidence: ConfidenceNone,
		}
	}

	reporting := ReportingCategoryOf(seg)
	secondary, fallback := SecondaryCategoryOf(seg)

	confidence := ConfidenceTable
	switch {
	case secondary == model.SecondaryUnknown:
		confidence = ConfidenceNone
	case fallback:
		confidence = ConfidenceFallback
	}

	return Result{
		Reporting:  reporting,
		Secondary:  secondary,
		Fund:       fund,
		Confidence: confidence,
		Fallback:   fallback,
	}
}

// ClassifyCode normalizes, decodes and classifies a raw code.
func ClassifyCode(code string, override *Override) Result {
	return Classify(acctcode.Decode(acctcode.Normalize(code)), override)
}

// ReportingCategoryOf maps the leading object digit to its reporting category.
func ReportingCategoryOf(seg acctcode.Segments) model.ReportingCategory {
	switch seg.ObjectDigit() {
	case 1:
		return model.ReportingAssets
	case 2:
		return model.ReportingLiabilities
	case 3:
		return model.ReportingFundBalance
	case 4:
		return model.ReportingClearing
	case 5:
		return model.ReportingRevenues
	case 6:
		return model.ReportingExpenditures
	case 7:
		return model.ReportingOtherResources
	case 8:
		return model.ReportingOtherUses
	}
	return model.ReportingUnknown
}

// FundCategoryOf maps the fund code series to a fund category.
func FundCategoryOf(seg acctcode.Segments) model.FundCategory {
	if !seg.Valid {
		return model.FundOtherGovernmental
	}
	if c, ok := fundSeries[seg.Fund[0]]; ok {
		return c
	}
	return model.FundOtherGovernmental
}

// fundSeries keys fund categories by the first digit of the fund code
// (199 general, 2xx special revenue, and so on).
var fundSeries = map[byte]model.FundCategory{
	'1': model.FundGeneral,
	'2': model.FundSpecialRevenue,
	'3': model.FundDebtService,
	'4': model.FundCapitalProjects,
	'5': model.FundEnterprise,
	'6': model.FundInternalService,
	'7': model.FundTrustAndAgency,
}
