package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/statement"
)

// Header is the CSV header of exports/audit-trail.csv.
const Header = "account_code,description,current_year_actual,budget,prior_year_actual," +
	"fund_code,function_code,object_code,sub_object_code,location_code," +
	"reporting_category,secondary_category,fund_category,mapping_method,mapping_confidence," +
	"statement_type,statement_section,statement_line_code,statement_line_description,statement_line_amount," +
	"rollup_applied,unmapped,processing_notes"

// File is the workspace-relative path of the exported audit trail.
const File = "exports/audit-trail.csv"

const numFields = 23

const (
	colAccountCode = iota
	colDescription
	colCurrentYearActual
	colBudget
	colPriorYearActual
	colFundCode
	colFunctionCode
	colObjectCode
	colSubObjectCode
	colLocationCode
	colReportingCategory
	colSecondaryCategory
	colFundCategory
	colMappingMethod
	colMappingConfidence
	colStatementType
	colStatementSection
	colStatementLineCode
	colStatementLineDescription
	colStatementLineAmount
	colRollupApplied
	colUnmapped
	colProcessingNotes
)

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colAccountCode] = r.AccountCode
	row[colDescription] = r.Description
	row[colCurrentYearActual] = r.CurrentYearActual.String()
	row[colBudget] = r.Budget.String()
	row[colPriorYearActual] = r.PriorYearActual.String()
	row[colFundCode] = r.FundCode
	row[colFunctionCode] = r.FunctionCode
	row[colObjectCode] = r.ObjectCode
	row[colSubObjectCode] = r.SubObjectCode
	row[colLocationCode] = r.LocationCode
	row[colReportingCategory] = string(r.ReportingCategory)
	row[colSecondaryCategory] = string(r.SecondaryCategory)
	row[colFundCategory] = string(r.FundCategory)
	row[colMappingMethod] = string(r.MappingMethod)
	row[colMappingConfidence] = r.MappingConfidence.String()
	row[colStatementType] = string(r.StatementType)
	row[colStatementSection] = r.StatementSection
	row[colStatementLineCode] = r.StatementLineCode
	row[colStatementLineDescription] = r.StatementLineDescription
	row[colStatementLineAmount] = r.StatementLineAmount.String()
	row[colRollupApplied] = strconv.FormatBool(r.RollupApplied)
	row[colUnmapped] = strconv.FormatBool(r.Unmapped)
	row[colProcessingNotes] = r.ProcessingNotes
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(record []string) (Record, error) {
	if len(record) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amounts := make([]decimal.Decimal, 0, 5)
	for _, col := range []int{colCurrentYearActual, colBudget, colPriorYearActual, colMappingConfidence, colStatementLineAmount} {
		d, err := parseDecimal(record[col])
		if err != nil {
			return Record{}, err
		}
		amounts = append(amounts, d)
	}

	rollupApplied, err := strconv.ParseBool(record[colRollupApplied])
	if err != nil {
		return Record{}, fmt.Errorf("parsing rollup_applied %q: %w", record[colRollupApplied], err)
	}
	unmapped, err := strconv.ParseBool(record[colUnmapped])
	if err != nil {
		return Record{}, fmt.Errorf("parsing unmapped %q: %w", record[colUnmapped], err)
	}

	return Record{
		AccountCode:              record[colAccountCode],
		Description:              record[colDescription],
		CurrentYearActual:        amounts[0],
		Budget:                   amounts[1],
		PriorYearActual:          amounts[2],
		FundCode:                 record[colFundCode],
		FunctionCode:             record[colFunctionCode],
		ObjectCode:               record[colObjectCode],
		SubObjectCode:            record[colSubObjectCode],
		LocationCode:             record[colLocationCode],
		ReportingCategory:        model.ReportingCategory(record[colReportingCategory]),
		SecondaryCategory:        model.SecondaryCategory(record[colSecondaryCategory]),
		FundCategory:             model.FundCategory(record[colFundCategory]),
		MappingMethod:            model.MappingMethod(record[colMappingMethod]),
		MappingConfidence:        amounts[3],
		StatementType:            statement.Kind(record[colStatementType]),
		StatementSection:         record[colStatementSection],
		StatementLineCode:        record[colStatementLineCode],
		StatementLineDescription: record[colStatementLineDescription],
		StatementLineAmount:      amounts[4],
		RollupApplied:            rollupApplied,
		Unmapped:                 unmapped,
		ProcessingNotes:          record[colProcessingNotes],
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records written by WriteCSV.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit trail CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	out := make([]Record, 0, len(records)-1)
	for i, rec := range records[1:] {
		r, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Save writes records to <root>/exports/audit-trail.csv.
func Save(root string, records []Record) error {
	path := filepath.Join(root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating exports dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating audit trail: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, records)
}

// Load reads <root>/exports/audit-trail.csv. A missing file yields no records.
func Load(root string) ([]Record, error) {
	f, err := os.Open(filepath.Join(root, File))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit trail: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
