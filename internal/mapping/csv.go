package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/model"
)

// Header is the CSV header for account-mappings.csv.
const Header = "account_code,description,reporting_category,secondary_category,fund_category,statement_line_code,notes,mapping_method,confidence"

const (
	numFields     = 9
	colCode       = 0
	colDesc       = 1
	colReporting  = 2
	colSecondary  = 3
	colFund       = 4
	colLine       = 5
	colNotes      = 6
	colMethod     = 7
	colConfidence = 8
)

// ReadMappings reads a persisted account-mappings.csv.
func ReadMappings(r io.Reader) ([]model.AccountClassification, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	var out []model.AccountClassification
	for i, rec := range records {
		c, err := UnmarshalMapping(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadPatches reads a user-supplied mapping CSV as raw patches. Enum values
// are checked later by Upsert so one bad row rejects only itself.
func ReadPatches(r io.Reader) (map[string]*Patch, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	patches := make(map[string]*Patch, len(records))
	for i, rec := range records {
		code := strings.TrimSpace(rec[colCode])
		if code == "" {
			return nil, fmt.Errorf("row %d: empty account_code", i+2)
		}
		patches[code] = &Patch{
			Description:       rec[colDesc],
			ReportingCategory: rec[colReporting],
			SecondaryCategory: rec[colSecondary],
			FundCategory:      rec[colFund],
			StatementLineCode: rec[colLine],
			Notes:             rec[colNotes],
			Confidence:        rec[colConfidence],
		}
	}
	return patches, nil
}

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mappings CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// WriteMappings writes classifications in the given order.
func WriteMappings(w io.Writer, mappings []model.AccountClassification) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range mappings {
		if err := cw.Write(MarshalMapping(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMapping converts a classification to a CSV row.
func MarshalMapping(c model.AccountClassification) []string {
	row := make([]string, numFields)
	row[colCode] = c.AccountCode
	row[colDesc] = c.Description
	row[colReporting] = string(c.ReportingCategory)
	row[colSecondary] = string(c.SecondaryCategory)
	row[colFund] = string(c.FundCategory)
	row[colLine] = c.StatementLineCode
	row[colNotes] = c.Notes
	row[colMethod] = string(c.MappingMethod)
	row[colConfidence] = c.Confidence.StringFixed(2)
	return row
}

// UnmarshalMapping converts a CSV row to a classification.
func UnmarshalMapping(record []string) (model.AccountClassification, error) {
	if len(record) != numFields {
		return model.AccountClassification{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	reporting, err := model.ParseReportingCategory(record[colReporting])
	if err != nil {
		return model.AccountClassification{}, err
	}
	secondary, err := model.ParseSecondaryCategory(record[colSecondary])
	if err != nil {
		return model.AccountClassification{}, err
	}
	fund, err := model.ParseFundCategory(record[colFund])
	if err != nil {
		return model.AccountClassification{}, err
	}
	method, err := model.ParseMappingMethod(record[colMethod])
	if err != nil {
		return model.AccountClassification{}, err
	}

	confidence := decimal.Zero
	if record[colConfidence] != "" {
		confidence, err = decimal.NewFromString(record[colConfidence])
		if err != nil {
			return model.AccountClassification{}, fmt.Errorf("parsing confidence %q: %w", record[colConfidence], err)
		}
	}

	return model.AccountClassification{
		AccountCode:       record[colCode],
		Description:       record[colDesc],
		ReportingCategory: reporting,
		SecondaryCategory: secondary,
		FundCategory:      fund,
		StatementLineCode: record[colLine],
		Notes:             record[colNotes],
		MappingMethod:     method,
		Confidence:        confidence,
	}, nil
}
