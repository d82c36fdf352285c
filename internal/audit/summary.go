package audit

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/classify"
	"github.com/cleared-dev/districtfs/internal/rollup"
)

// Summary totals an audit trail.
type Summary struct {
	Records    int             `json:"records"`
	Mapped     int             `json:"mapped"`
	Unmapped   int             `json:"unmapped"`
	RolledUp   int             `json:"rolled_up"`
	Debits     decimal.Decimal `json:"debits"`
	Credits    decimal.Decimal `json:"credits"`
	Difference decimal.Decimal `json:"difference"`
	Balanced   bool            `json:"balanced"`
}

// Summarize counts records and totals mapped current year amounts by the
// normal balance side of their reporting category. conv says how the
// amounts are signed in the trial balance.
func Summarize(records []Record, conv rollup.SignConvention) Summary {
	s := Summary{Records: len(records), Debits: decimal.Zero, Credits: decimal.Zero}
	for _, r := range records {
		if r.Unmapped {
			s.Unmapped++
			continue
		}
		s.Mapped++
		if r.RollupApplied {
			s.RolledUp++
		}

		sign := classify.SignOf(r.ReportingCategory)
		amount := r.CurrentYearActual
		if conv == rollup.SignSigned {
			amount = amount.Mul(sign.Decimal())
		}
		if sign == classify.Credit {
			s.Credits = s.Credits.Add(amount)
		} else {
			s.Debits = s.Debits.Add(amount)
		}
	}
	s.Difference = s.Debits.Sub(s.Credits)
	s.Balanced = s.Difference.IsZero()
	return s
}
