package mapping

import (
	"fmt"
	"sort"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/model"
)

// maxListed caps the account codes listed in a ValidationSummary.
const maxListed = 10

// ValidationSummary is advisory; invalid entries never block a save.
type ValidationSummary struct {
	Valid                  bool                      `json:"valid"`
	TotalUnmapped          int                       `json:"total_unmapped"`
	UnmappedAccounts       []string                  `json:"unmapped_accounts"`
	TotalInvalid           int                       `json:"total_invalid"`
	InvalidAccounts        []string                  `json:"invalid_accounts"`
	MappedCategories       []model.SecondaryCategory `json:"mapped_categories"`
	HasEssentialCategories bool                      `json:"has_essential_categories"`
	Warnings               []string                  `json:"warnings"`
}

type categoryGroup struct {
	Name       string
	Categories []model.SecondaryCategory
}

// essentialGroups must each have at least one mapped account for a complete set of statements.
var essentialGroups = []categoryGroup{
	{"assets", []model.SecondaryCategory{model.CurrentAssets, model.CapitalAssets}},
	{"liabilities", []model.SecondaryCategory{model.CurrentLiabilities, model.LongTermLiabilities}},
	{"net position", []model.SecondaryCategory{model.NetInvestmentInCapitalAssets, model.RestrictedNetPosition, model.UnrestrictedNetPosition}},
	{"revenues", []model.SecondaryCategory{model.ProgramRevenues, model.GeneralRevenues}},
	{"expenses", []model.SecondaryCategory{model.ProgramExpenses, model.GeneralExpenses}},
}

// Validate summarizes the classifications held by the store.
func (s *Store) Validate() ValidationSummary {
	return Summarize(s.Snapshot(), nil)
}

// ValidateCodes summarizes the store against a trial balance's codes.
// Codes with no stored classification count as unmapped.
func (s *Store) ValidateCodes(codes []string) ValidationSummary {
	return Summarize(s.Snapshot(), codes)
}

// Summarize builds a ValidationSummary over classifications plus any extra codes.
func Summarize(classifications model.Classifications, codes []string) ValidationSummary {
	all := make(map[string]struct{}, len(classifications)+len(codes))
	for code := range classifications {
		all[code] = struct{}{}
	}
	for _, code := range codes {
		if code = acctcode.Normalize(code); code != "" {
			all[code] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(all))
	for code := range all {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	var unmapped, invalid []string
	mapped := make(map[model.SecondaryCategory]bool)
	for _, code := range sorted {
		if !acctcode.Decode(code).Valid {
			invalid = append(invalid, code)
		}
		c, ok := classifications[code]
		if !ok || !c.Mapped() {
			unmapped = append(unmapped, code)
			continue
		}
		mapped[c.SecondaryCategory] = true
	}

	summary := ValidationSummary{
		Valid:                  len(unmapped) == 0 && len(invalid) == 0,
		TotalUnmapped:          len(unmapped),
		UnmappedAccounts:       firstN(unmapped, maxListed),
		TotalInvalid:           len(invalid),
		InvalidAccounts:        firstN(invalid, maxListed),
		MappedCategories:       []model.SecondaryCategory{},
		HasEssentialCategories: true,
		Warnings:               []string{},
	}
	for _, c := range model.SecondaryCategories {
		if mapped[c] {
			summary.MappedCategories = append(summary.MappedCategories, c)
		}
	}
	for _, g := range essentialGroups {
		if !anyMapped(mapped, g.Categories) {
			summary.HasEssentialCategories = false
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("No %s categories mapped", g.Name))
		}
	}
	return summary
}

func anyMapped(mapped map[model.SecondaryCategory]bool, cats []model.SecondaryCategory) bool {
	for _, c := range cats {
		if mapped[c] {
			return true
		}
	}
	return false
}

func firstN(codes []string, n int) []string {
	if len(codes) > n {
		codes = codes[:n]
	}
	return append([]string{}, codes...)
}
