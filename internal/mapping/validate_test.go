package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/districtfs/internal/model"
)

func TestValidate_EmptyStoreWarnsEveryGroup(t *testing.T) {
	s := testStore()
	v := s.Validate()

	assert.True(t, v.Valid)
	assert.False(t, v.HasEssentialCategories)
	assert.Equal(t, []string{
		"No assets categories mapped",
		"No liabilities categories mapped",
		"No net position categories mapped",
		"No revenues categories mapped",
		"No expenses categories mapped",
	}, v.Warnings)
}

func TestValidate_CompleteSet(t *testing.T) {
	s := testStore()
	s.AutoMap([]string{"199001110", "199002110", "199003900", "199005711", "199116100"})

	v := s.Validate()
	assert.True(t, v.Valid)
	assert.True(t, v.HasEssentialCategories)
	assert.Empty(t, v.Warnings)
	assert.Equal(t, []model.SecondaryCategory{
		model.CurrentAssets,
		model.CurrentLiabilities,
		model.UnrestrictedNetPosition,
		model.GeneralRevenues,
		model.ProgramExpenses,
	}, v.MappedCategories)
}

func TestValidate_UnmappedAndInvalid(t *testing.T) {
	s := testStore()
	s.AutoMap([]string{"199001110", "1234", "199009100"})

	v := s.ValidateCodes([]string{"199001110", "199-00-2110"})
	assert.False(t, v.Valid)
	assert.Equal(t, 3, v.TotalUnmapped)
	assert.Equal(t, []string{"1234", "199002110", "199009100"}, v.UnmappedAccounts)
	assert.Equal(t, 1, v.TotalInvalid)
	assert.Equal(t, []string{"1234"}, v.InvalidAccounts)
}

func TestValidate_ListCapped(t *testing.T) {
	var extra []string
	for _, c := range []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"} {
		extra = append(extra, "1990091"+c)
	}
	v := Summarize(model.Classifications{}, extra)

	assert.Equal(t, 12, v.TotalUnmapped)
	assert.Len(t, v.UnmappedAccounts, 10)
}
