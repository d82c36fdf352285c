package classify

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/model"
)

// Sign is the normal balance side of a category.
type Sign int

const (
	Debit  Sign = 1
	Credit Sign = -1
)

func (s Sign) String() string {
	if s == Credit {
		return "credit"
	}
	return "debit"
}

// Decimal returns +1 for debit-normal and -1 for credit-normal.
func (s Sign) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(s))
}

var normalBalance = map[model.ReportingCategory]Sign{
	model.ReportingAssets:         Debit,
	model.ReportingLiabilities:    Credit,
	model.ReportingFundBalance:    Credit,
	model.ReportingClearing:       Debit,
	model.ReportingRevenues:       Credit,
	model.ReportingExpenditures:   Debit,
	model.ReportingOtherResources: Credit,
	model.ReportingOtherUses:      Debit,
	model.ReportingUnknown:        Debit,
}

// SignOf returns the normal balance side of a reporting category.
// Unrecognized categories are treated as debit-normal.
func SignOf(c model.ReportingCategory) Sign {
	if s, ok := normalBalance[c]; ok {
		return s
	}
	return Debit
}

// SignOfSecondary delegates to the secondary category's parent reporting category.
func SignOfSecondary(c model.SecondaryCategory) Sign {
	return SignOf(c.Reporting())
}
