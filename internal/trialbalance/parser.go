package trialbalance

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/acctcode"
	"github.com/cleared-dev/districtfs/internal/model"
)

// Parser converts a trial balance export into rows.
type Parser interface {
	Parse(r io.Reader) ([]model.TrialBalanceRow, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&DelimitedParser{Name: "csv", Comma: ','})
	r.Register(&DelimitedParser{Name: "tsv", Comma: '\t'})
	r.Register(&DelimitedParser{Name: "pipe", Comma: '|'})
	r.Register(&WhitespaceParser{})
	return r
}

// DelimitedParser reads delimiter-separated exports. Columns are
// account_code, [description,] current_year_actual, [budget, [prior_year_actual]].
type DelimitedParser struct {
	Name  string
	Comma rune
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.Name }

// Parse reads every record, skipping a leading header row and rows without a code.
func (p *DelimitedParser) Parse(r io.Reader) ([]model.TrialBalanceRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s trial balance: %w", p.Name, err)
	}

	var rows []model.TrialBalanceRow
	for i, rec := range records {
		if i == 0 && isHeader(rec) {
			continue
		}
		if row, ok := rowFromFields(rec); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// WhitespaceParser reads fixed-width style exports: a code, an optional
// multi-word description, then up to three trailing amounts.
type WhitespaceParser struct{}

// Format returns the parser name.
func (p *WhitespaceParser) Format() string { return "whitespace" }

// Parse reads line by line.
func (p *WhitespaceParser) Parse(r io.Reader) ([]model.TrialBalanceRow, error) {
	sc := bufio.NewScanner(r)
	var rows []model.TrialBalanceRow
	first := true
	for sc.Scan() {
		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		if first {
			first = false
			if isHeader(tokens) {
				continue
			}
		}

		end := len(tokens)
		for end > 1 && len(tokens)-end < 3 && isNumber(tokens[end-1]) {
			end--
		}
		fields := []string{tokens[0], strings.Join(tokens[1:end], " ")}
		fields = append(fields, tokens[end:]...)
		if row, ok := rowFromLayout(fields, true); ok {
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading whitespace trial balance: %w", err)
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.Contains(strings.ToLower(rec[0]), "account")
}

// rowFromFields picks a column layout. Five or more columns, or a non-numeric
// second column, means the second column is a description.
func rowFromFields(rec []string) (model.TrialBalanceRow, bool) {
	withDesc := len(rec) >= 5 || (len(rec) >= 2 && strings.TrimSpace(rec[1]) != "" && !isNumber(rec[1]))
	return rowFromLayout(rec, withDesc)
}

func rowFromLayout(rec []string, withDesc bool) (model.TrialBalanceRow, bool) {
	if len(rec) == 0 {
		return model.TrialBalanceRow{}, false
	}
	code := acctcode.Normalize(rec[0])
	if code == "" {
		return model.TrialBalanceRow{}, false
	}

	row := model.TrialBalanceRow{AccountCode: code}
	amounts := rec[1:]
	if withDesc && len(rec) > 1 {
		row.Description = strings.TrimSpace(rec[1])
		amounts = rec[2:]
	}
	row.CurrentYearActual = Amount(field(amounts, 0))
	row.Budget = Amount(field(amounts, 1))
	row.PriorYearActual = Amount(field(amounts, 2))
	return row, true
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// Amount parses an exported amount. Currency symbols and thousands separators
// are ignored, "(123.45)" is negative, and anything unparseable is zero.
func Amount(s string) decimal.Decimal {
	d, ok := parseAmount(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

func isNumber(s string) bool {
	_, ok := parseAmount(s)
	return ok
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
