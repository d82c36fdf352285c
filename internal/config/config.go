package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/districtfs/internal/rollup"
)

// FileName is the workspace configuration file.
const FileName = "districtfs.yaml"

// Config represents the top-level districtfs.yaml configuration.
type Config struct {
	District   DistrictConfig   `yaml:"district"`
	Fiscal     FiscalConfig     `yaml:"fiscal"`
	Statements StatementsConfig `yaml:"statements"`
	Mapping    MappingConfig    `yaml:"mapping"`
	Import     ImportConfig     `yaml:"import"`
	Logging    LoggingConfig    `yaml:"logging"`
	Git        GitConfig        `yaml:"git"`
}

// DistrictConfig identifies the reporting district.
type DistrictConfig struct {
	Name   string `yaml:"name"`
	Number string `yaml:"number,omitempty"` // county-district number, e.g. "101912"
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearEnd string `yaml:"year_end"` // "MM-DD" format, e.g. "06-30"
}

// StatementsConfig holds statement generation options. Amounts are decimal
// strings so they survive a YAML round trip exactly.
type StatementsConfig struct {
	Tolerance             string             `yaml:"tolerance"`
	SignConvention        string             `yaml:"sign_convention"`
	NetPositionBeginning  string             `yaml:"net_position_beginning,omitempty"`
	FundBalancesBeginning FundBalancesConfig `yaml:"fund_balances_beginning,omitempty"`
}

// FundBalancesConfig holds one beginning fund balance per fund column.
type FundBalancesConfig struct {
	GeneralFund   string `yaml:"general_fund,omitempty"`
	NonMajorFunds string `yaml:"non_major_funds,omitempty"`
}

// MappingConfig tunes the mapping store.
type MappingConfig struct {
	PageSize int `yaml:"page_size"`
}

// ImportConfig selects the trial balance parser.
type ImportConfig struct {
	Format string `yaml:"format"`
}

// LoggingConfig controls the command logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a districtfs.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(districtName, districtNumber string) *Config {
	return &Config{
		District: DistrictConfig{
			Name:   districtName,
			Number: districtNumber,
		},
		Fiscal: FiscalConfig{
			YearEnd: "06-30",
		},
		Statements: StatementsConfig{
			Tolerance:      "1.00",
			SignConvention: string(rollup.SignNatural),
		},
		Mapping: MappingConfig{
			PageSize: 100,
		},
		Import: ImportConfig{
			Format: "csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "districtfs",
			AuthorEmail: "districtfs@localhost",
		},
	}
}

// RollupOptions parses the statement options.
func (s StatementsConfig) RollupOptions() (rollup.Options, error) {
	var opts rollup.Options
	var err error

	if opts.SignConvention, err = rollup.ParseSignConvention(s.SignConvention); err != nil {
		return rollup.Options{}, fmt.Errorf("statements.sign_convention: %w", err)
	}
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"statements.tolerance", s.Tolerance, &opts.Tolerance},
		{"statements.net_position_beginning", s.NetPositionBeginning, &opts.NetPositionBeginning},
		{"statements.fund_balances_beginning.general_fund", s.FundBalancesBeginning.GeneralFund, &opts.FundBalancesBeginning.GeneralFund},
		{"statements.fund_balances_beginning.non_major_funds", s.FundBalancesBeginning.NonMajorFunds, &opts.FundBalancesBeginning.NonMajorFunds},
	}
	for _, f := range fields {
		if *f.dst, err = parseDecimal(f.raw); err != nil {
			return rollup.Options{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return opts, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
