package audit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/classify"
	"github.com/cleared-dev/districtfs/internal/model"
	"github.com/cleared-dev/districtfs/internal/rollup"
	"github.com/cleared-dev/districtfs/internal/statement"
)

// Record traces one trial balance row to the statement line it feeds.
type Record struct {
	AccountCode              string
	Description              string
	CurrentYearActual        decimal.Decimal
	Budget                   decimal.Decimal
	PriorYearActual          decimal.Decimal
	FundCode                 string
	FunctionCode             string
	ObjectCode               string
	SubObjectCode            string
	LocationCode             string
	ReportingCategory        model.ReportingCategory
	SecondaryCategory        model.SecondaryCategory
	FundCategory             model.FundCategory
	MappingMethod            model.MappingMethod
	MappingConfidence        decimal.Decimal
	StatementType            statement.Kind
	StatementSection         string
	StatementLineCode        string
	StatementLineDescription string
	StatementLineAmount      decimal.Decimal
	RollupApplied            bool
	Unmapped                 bool
	ProcessingNotes          string
}

// Build returns one record per row, in row order. stmts may be nil, in
// which case line amounts are left at zero.
func Build(rows []model.TrialBalanceRow, cls model.Classifications, stmts *statement.Statements) []Record {
	var cells map[string]statement.Line
	if stmts != nil {
		cells = statement.Index(stmts)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, buildRecord(row, cls, cells))
	}
	return out
}

func buildRecord(row model.TrialBalanceRow, cls model.Classifications, cells map[string]statement.Line) Record {
	code := acctcode.Normalize(row.AccountCode)
	seg := acctcode.Decode(code)
	rec := Record{
		AccountCode:       code,
		Description:       row.Description,
		CurrentYearActual: row.CurrentYearActual,
		Budget:            row.Budget,
		PriorYearActual:   row.PriorYearActual,
		FundCode:          seg.Fund,
		FunctionCode:      seg.Function,
		ObjectCode:        seg.Object,
		SubObjectCode:     seg.SubObject,
		LocationCode:      seg.Location,
	}

	var notes []string
	if !seg.Valid {
		notes = append(notes, "account code could not be decoded")
	}

	c, ok := cls[code]
	if !ok {
		rec.ReportingCategory = model.ReportingUnknown
		rec.SecondaryCategory = model.SecondaryUnknown
		rec.FundCategory = classify.FundCategoryOf(seg)
		rec.MappingConfidence = decimal.Zero
		rec.Unmapped = true
		rec.ProcessingNotes = joinNotes(append(notes, "no classification for account; excluded from statements"))
		return rec
	}

	rec.ReportingCategory = c.ReportingCategory
	rec.SecondaryCategory = c.SecondaryCategory
	rec.FundCategory = c.FundCategory
	rec.MappingMethod = c.MappingMethod
	rec.MappingConfidence = c.Confidence
	if rec.Description == "" {
		rec.Description = c.Description
	}

	if !c.Mapped() {
		rec.Unmapped = true
		rec.ProcessingNotes = joinNotes(append(notes, "classification is unknown; excluded from statements"))
		return rec
	}

	placements := rollup.Place(c, seg)
	if len(placements) == 0 {
		if c.SecondaryCategory == model.ClearingAccounts {
			notes = append(notes, "clearing account; not reported on any statement")
		} else {
			notes = append(notes, fmt.Sprintf("%s has no statement line", c.SecondaryCategory.DisplayName()))
		}
		rec.ProcessingNotes = joinNotes(notes)
		return rec
	}

	primary := placements[0]
	rec.StatementType = primary.Statement
	rec.StatementSection = primary.Section
	rec.StatementLineCode = primary.Code
	rec.StatementLineDescription = primary.Description
	if l, ok := cells[statement.CellKey(primary.Statement, primary.Path, primary.Column)]; ok {
		rec.StatementLineAmount = l.Amount
	}

	seen := map[string]bool{}
	for i, p := range placements {
		if p.Override {
			notes = append(notes, fmt.Sprintf("statement line override: %s (%s)", p.Description, p.Code))
		}
		if p.Rollup {
			rec.RollupApplied = true
			note := fmt.Sprintf("rollup applied: combined %s into %s (%s)", rec.ObjectCode, p.Description, p.Code)
			if !seen[note] {
				seen[note] = true
				notes = append(notes, note)
			}
		}
		if p.Negate {
			notes = append(notes, fmt.Sprintf("presented negated in %s", p.Section))
		}
		if i > 0 {
			notes = append(notes, fmt.Sprintf("also reported in %s: %s (%s) %s",
				p.Statement.Title(), p.Description, p.Code, strings.ReplaceAll(string(p.Column), "_", " ")))
		}
	}
	rec.ProcessingNotes = joinNotes(notes)
	return rec
}

func joinNotes(notes []string) string {
	return strings.Join(notes, "; ")
}
