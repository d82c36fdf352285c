package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/districtfs/internal/rollup"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Lone Star ISD", "101912")
	cfg.Statements.NetPositionBeginning = "2500000.00"
	cfg.Statements.FundBalancesBeginning.GeneralFund = "350000"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.District, got.District)
	assert.Equal(t, cfg.Fiscal.YearEnd, got.Fiscal.YearEnd)
	assert.Equal(t, cfg.Statements, got.Statements)
	assert.Equal(t, cfg.Mapping.PageSize, got.Mapping.PageSize)
	assert.Equal(t, cfg.Import.Format, got.Import.Format)
	assert.Equal(t, cfg.Logging, got.Logging)
	assert.Equal(t, cfg.Git, got.Git)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Lone Star ISD", "")

	assert.Equal(t, "Lone Star ISD", cfg.District.Name)
	assert.Empty(t, cfg.District.Number)
	assert.Equal(t, "06-30", cfg.Fiscal.YearEnd)
	assert.Equal(t, "1.00", cfg.Statements.Tolerance)
	assert.Equal(t, "natural", cfg.Statements.SignConvention)
	assert.Equal(t, 100, cfg.Mapping.PageSize)
	assert.Equal(t, "csv", cfg.Import.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("district: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Lone Star ISD", "101912")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Lone Star ISD")
	assert.Contains(t, contents, "year_end: 06-30")
	assert.Contains(t, contents, "sign_convention: natural")
	assert.Contains(t, contents, "page_size: 100")
	assert.Contains(t, contents, "auto_commit: true")
	assert.NotContains(t, contents, "net_position_beginning")
}

func TestRollupOptions(t *testing.T) {
	s := StatementsConfig{
		Tolerance:            "0.50",
		SignConvention:       "signed",
		NetPositionBeginning: "1000",
		FundBalancesBeginning: FundBalancesConfig{
			GeneralFund:   "300.25",
			NonMajorFunds: "-12",
		},
	}
	opts, err := s.RollupOptions()
	require.NoError(t, err)

	assert.Equal(t, rollup.SignSigned, opts.SignConvention)
	assert.Equal(t, "0.5", opts.Tolerance.String())
	assert.Equal(t, "1000", opts.NetPositionBeginning.String())
	assert.Equal(t, "300.25", opts.FundBalancesBeginning.GeneralFund.String())
	assert.Equal(t, "-12", opts.FundBalancesBeginning.NonMajorFunds.String())
}

func TestRollupOptions_EmptyIsZero(t *testing.T) {
	opts, err := StatementsConfig{}.RollupOptions()
	require.NoError(t, err)
	assert.Equal(t, rollup.SignNatural, opts.SignConvention)
	assert.True(t, opts.Tolerance.IsZero())
	assert.True(t, opts.NetPositionBeginning.IsZero())
}

func TestRollupOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  StatementsConfig
		want string
	}{
		{"sign convention", StatementsConfig{SignConvention: "upside-down"}, "statements.sign_convention"},
		{"tolerance", StatementsConfig{Tolerance: "one"}, "statements.tolerance"},
		{"fund balance", StatementsConfig{FundBalancesBeginning: FundBalancesConfig{NonMajorFunds: "1,000"}}, "non_major_funds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.RollupOptions()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
