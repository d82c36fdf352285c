package mapping

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/model"
)

// Patch is a partial classification. Empty fields leave the stored value unchanged.
type Patch struct {
	Description       string `json:"description" validate:"maxLen:200"`
	ReportingCategory string `json:"reporting_category" validate:"ValidateReporting"`
	SecondaryCategory string `json:"secondary_category" validate:"ValidateSecondary"`
	FundCategory      string `json:"fund_category" validate:"ValidateFund"`
	StatementLineCode string `json:"statement_line_code" validate:"maxLen:64"`
	Notes             string `json:"notes" validate:"maxLen:1000"`
	Confidence        string `json:"confidence" validate:"ValidateConfidence"`
}

// Messages returns the rejection text for each rule.
func (p Patch) Messages() map[string]string {
	return validate.MS{
		"maxLen":             "{field} is too long",
		"ValidateReporting":  "unknown reporting category",
		"ValidateSecondary":  "unknown secondary category",
		"ValidateFund":       "unknown fund category",
		"ValidateConfidence": "confidence must be a decimal between 0 and 1",
	}
}

func (p Patch) ValidateReporting(val string) bool {
	_, err := model.ParseReportingCategory(val)
	return val == "" || err == nil
}

func (p Patch) ValidateSecondary(val string) bool {
	_, err := model.ParseSecondaryCategory(val)
	return val == "" || err == nil
}

func (p Patch) ValidateFund(val string) bool {
	_, err := model.ParseFundCategory(val)
	return val == "" || err == nil
}

func (p Patch) ValidateConfidence(val string) bool {
	if val == "" {
		return true
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

// Validate checks the payload and returns the first problem found.
func (p Patch) Validate() error {
	v := validate.Struct(p)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	return nil
}

// apply merges p into c. The patch must already be valid.
func (p Patch) apply(c model.AccountClassification) (model.AccountClassification, error) {
	if p.Description != "" {
		c.Description = p.Description
	}
	if p.StatementLineCode != "" {
		c.StatementLineCode = p.StatementLineCode
	}
	if p.Notes != "" {
		c.Notes = p.Notes
	}
	if p.FundCategory != "" {
		f, err := model.ParseFundCategory(p.FundCategory)
		if err != nil {
			return c, err
		}
		c.FundCategory = f
	}

	if p.SecondaryCategory != "" {
		s, err := model.ParseSecondaryCategory(p.SecondaryCategory)
		if err != nil {
			return c, err
		}
		c.SecondaryCategory = s
		if p.ReportingCategory == "" {
			c.ReportingCategory = s.Reporting()
		}
	}
	if p.ReportingCategory != "" {
		r, err := model.ParseReportingCategory(p.ReportingCategory)
		if err != nil {
			return c, err
		}
		c.ReportingCategory = r
	}
	if c.SecondaryCategory.IsKnown() && c.SecondaryCategory.Reporting() != c.ReportingCategory {
		return c, fmt.Errorf("secondary category %s does not belong to reporting category %q",
			c.SecondaryCategory, c.ReportingCategory)
	}

	if p.Confidence != "" {
		d, err := decimal.NewFromString(p.Confidence)
		if err != nil {
			return c, fmt.Errorf("parsing confidence %q: %w", p.Confidence, err)
		}
		c.Confidence = d
	}
	return c, nil
}

// Rejection explains why one upsert entry was not applied.
type Rejection struct {
	AccountCode string `json:"account_code"`
	Reason      string `json:"reason"`
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.AccountCode, r.Reason)
}

// UpsertResult reports the outcome of a batch upsert.
type UpsertResult struct {
	Applied    int         `json:"applied"`
	Deleted    int         `json:"deleted"`
	Rejections []Rejection `json:"rejections"`
}
