package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/model"
)

func TestClassify_Expenditure(t *testing.T) {
	r := ClassifyCode("199-11-6100", nil)

	assert.Equal(t, model.ReportingExpenditures, r.Reporting)
	assert.Equal(t, model.ProgramExpenses, r.Secondary)
	assert.Equal(t, model.FundGeneral, r.Fund)
	assert.True(t, r.Confidence.Equal(ConfidenceTable))
	assert.False(t, r.Overridden)
}

func TestSecondaryTable(t *testing.T) {
	tests := []struct {
		object   string
		want     model.SecondaryCategory
		fallback bool
	}{
		{"1110", model.CurrentAssets, false},
		{"1490", model.CurrentAssets, false},
		{"1520", model.CapitalAssets, false},
		{"1600", model.CapitalAssets, true},
		{"1705", model.DeferredOutflows, false},
		{"1900", model.CapitalAssets, true},
		{"2110", model.CurrentLiabilities, false},
		{"2300", model.CurrentLiabilities, false},
		{"2400", model.LongTermLiabilities, false},
		{"2545", model.LongTermLiabilities, false},
		{"2605", model.DeferredInflows, false},
		{"2900", model.CurrentLiabilities, true},
		{"3200", model.NetInvestmentInCapitalAssets, false},
		{"3300", model.RestrictedNetPosition, false},
		{"3850", model.RestrictedNetPosition, false},
		{"3900", model.UnrestrictedNetPosition, false},
		{"3100", model.UnrestrictedNetPosition, true},
		{"4100", model.ClearingAccounts, false},
		{"5100", model.ProgramRevenues, false},
		{"5300", model.ProgramRevenues, false},
		{"5711", model.GeneralRevenues, true},
		{"6100", model.ProgramExpenses, false},
		{"6500", model.ProgramExpenses, false},
		{"6600", model.GeneralExpenses, true},
		{"7915", model.OtherResources, false},
		{"8911", model.OtherUses, false},
		{"9100", model.SecondaryUnknown, false},
		{"0100", model.SecondaryUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.object, func(t *testing.T) {
			seg := acctcode.Decode("19900" + tt.object)
			got, fallback := SecondaryCategoryOf(seg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fallback, fallback)
			if tt.want != model.SecondaryUnknown {
				assert.Equal(t, got.Reporting(), ReportingCategoryOf(seg), "secondary must sit under its reporting category")
			}
		})
	}
}

func TestReportingCategoryOf(t *testing.T) {
	tests := []struct {
		object string
		want   model.ReportingCategory
	}{
		{"1110", model.ReportingAssets},
		{"2110", model.ReportingLiabilities},
		{"3600", model.ReportingFundBalance},
		{"4000", model.ReportingClearing},
		{"5700", model.ReportingRevenues},
		{"6100", model.ReportingExpenditures},
		{"7900", model.ReportingOtherResources},
		{"8900", model.ReportingOtherUses},
		{"9000", model.ReportingUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReportingCategoryOf(acctcode.Decode("19900"+tt.object)), tt.object)
	}
}

func TestFundCategoryOf(t *testing.T) {
	tests := []struct {
		fund string
		want model.FundCategory
	}{
		{"199", model.FundGeneral},
		{"211", model.FundSpecialRevenue},
		{"200", model.FundSpecialRevenue},
		{"300", model.FundDebtService},
		{"400", model.FundCapitalProjects},
		{"500", model.FundEnterprise},
		{"600", model.FundInternalService},
		{"700", model.FundTrustAndAgency},
		{"865", model.FundOtherGovernmental},
		{"000", model.FundOtherGovernmental},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FundCategoryOf(acctcode.Decode(tt.fund+"116100")), tt.fund)
	}
}

func TestClassify_ShortCodeIsUnknown(t *testing.T) {
	r := ClassifyCode("19911610", nil)

	assert.Equal(t, model.ReportingUnknown, r.Reporting)
	assert.Equal(t, model.SecondaryUnknown, r.Secondary)
	assert.Equal(t, model.FundOtherGovernmental, r.Fund)
	assert.True(t, r.Confidence.IsZero())
}

func TestClassify_Override(t *testing.T) {
	seg := acctcode.Decode("211001110")

	r := Classify(seg, &Override{Reporting: model.ReportingAssets, Secondary: model.CapitalAssets})
	assert.True(t, r.Overridden)
	assert.Equal(t, model.CapitalAssets, r.Secondary)
	assert.Equal(t, model.FundSpecialRevenue, r.Fund, "fund is always derived from the code")
	assert.True(t, r.Confidence.Equal(ConfidenceManual))

	// Half an override is ignored.
	r = Classify(seg, &Override{Secondary: model.CapitalAssets})
	assert.False(t, r.Overridden)
	assert.Equal(t, model.CurrentAssets, r.Secondary)
}

func TestClassify_FallbackConfidence(t *testing.T) {
	r := ClassifyCode("199001600", nil)
	assert.True(t, r.Fallback)
	assert.True(t, r.Confidence.Equal(ConfidenceFallback))
}

func TestSignOf(t *testing.T) {
	tests := []struct {
		cat  model.ReportingCategory
		want Sign
	}{
		{model.ReportingAssets, Debit},
		{model.ReportingLiabilities, Credit},
		{model.ReportingFundBalance, Credit},
		{model.ReportingClearing, Debit},
		{model.ReportingRevenues, Credit},
		{model.ReportingExpenditures, Debit},
		{model.ReportingOtherResources, Credit},
		{model.ReportingOtherUses, Debit},
		{model.ReportingUnknown, Debit},
		{model.ReportingCategory(""), Debit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignOf(tt.cat), string(tt.cat))
	}

	assert.Equal(t, Credit, SignOfSecondary(model.DeferredInflows))
	assert.Equal(t, Debit, SignOfSecondary(model.DeferredOutflows))
	assert.Equal(t, "credit", Credit.String())
	assert.True(t, Credit.Decimal().IsNegative())
}
