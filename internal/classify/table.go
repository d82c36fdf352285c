package classify

import (
	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/model"
)

// prefixRange covers two-digit object prefixes From..To inclusive.
type prefixRange struct {
	From, To  string
	Secondary model.SecondaryCategory
}

// digitRule holds the secondary split for one leading object digit.
type digitRule struct {
	Ranges    []prefixRange
	Otherwise model.SecondaryCategory
}

// secondaryTable is the secondary category ground truth.
//
//	digit | two-digit prefix                          | otherwise
//	------+-------------------------------------------+---------------------------
//	1     | 11-14 current_assets                      | capital_assets
//	      | 15    capital_assets                      |
//	      | 17    deferred_outflows                   |
//	2     | 21-23 current_liabilities                 | current_liabilities
//	      | 24-25 long_term_liabilities               |
//	      | 26    deferred_inflows                    |
//	3     | 32    net_investment_in_capital_assets    | unrestricted_net_position
//	      | 33-38 restricted_net_position             |
//	      | 39    unrestricted_net_position           |
//	4     | -                                         | clearing_accounts
//	5     | 51-53 program_revenues                    | general_revenues
//	6     | 61-65 program_expenses                    | general_expenses
//	7     | -                                         | other_resources
//	8     | -                                         | other_uses
//	other | -                                         | unknown
var secondaryTable = map[int]digitRule{
	1: {
		Ranges: []prefixRange{
			{"11", "14", model.CurrentAssets},
			{"15", "15", model.CapitalAssets},
			{"17", "17", model.DeferredOutflows},
		},
		Otherwise: model.CapitalAssets,
	},
	2: {
		Ranges: []prefixRange{
			{"21", "23", model.CurrentLiabilities},
			{"24", "25", model.LongTermLiabilities},
			{"26", "26", model.DeferredInflows},
		},
		Otherwise: model.CurrentLiabilities,
	},
	3: {
		Ranges: []prefixRange{
			{"32", "32", model.NetInvestmentInCapitalAssets},
			{"33", "38", model.RestrictedNetPosition},
			{"39", "39", model.UnrestrictedNetPosition},
		},
		Otherwise: model.UnrestrictedNetPosition,
	},
	4: {Otherwise: model.ClearingAccounts},
	5: {
		Ranges:    []prefixRange{{"51", "53", model.ProgramRevenues}},
		Otherwise: model.GeneralRevenues,
	},
	6: {
		Ranges:    []prefixRange{{"61", "65", model.ProgramExpenses}},
		Otherwise: model.GeneralExpenses,
	},
	7: {Otherwise: model.OtherResources},
	8: {Otherwise: model.OtherUses},
}

// SecondaryCategoryOf looks up the secondary category for segments.
// fallback is true when the digit matched but no prefix range did.
func SecondaryCategoryOf(seg acctcode.Segments) (cat model.SecondaryCategory, fallback bool) {
	rule, ok := secondaryTable[seg.ObjectDigit()]
	if !ok {
		return model.SecondaryUnknown, false
	}

	prefix := seg.ObjectPrefix(2)
	for _, r := range rule.Ranges {
		if prefix >= r.From && prefix <= r.To {
			return r.Secondary, false
		}
	}

	// Digits without sub-ranges are exact hits, not fallbacks.
	return rule.Otherwise, len(rule.Ranges) > 0
}
