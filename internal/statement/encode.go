package statement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// MarshalJSON encodes programs as an object keyed by program key, in order,
// followed by total_governmental and total_primary.
func (g GovernmentalActivities) MarshalJSON() ([]byte, error) {
	ow := newObjectWriter()
	for _, p := range g.Programs {
		if err := ow.field(p.Key, p); err != nil {
			return nil, err
		}
	}
	if err := ow.field("total_governmental", g.TotalGovernmental); err != nil {
		return nil, err
	}
	if err := ow.field("total_primary", g.TotalPrimary); err != nil {
		return nil, err
	}
	return ow.close(), nil
}

// MarshalJSON encodes the rows as an object keyed by function key, in order.
func (f FunctionLines) MarshalJSON() ([]byte, error) {
	ow := newObjectWriter()
	for _, l := range f {
		if err := ow.field(l.Key, l.FundLineItem); err != nil {
			return nil, err
		}
	}
	return ow.close(), nil
}

type objectWriter struct {
	buf   bytes.Buffer
	count int
}

func newObjectWriter() *objectWriter {
	ow := &objectWriter{}
	ow.buf.WriteByte('{')
	return ow
}

func (ow *objectWriter) field(key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if ow.count > 0 {
		ow.buf.WriteByte(',')
	}
	ow.count++
	ow.buf.Write(k)
	ow.buf.WriteByte(':')
	ow.buf.Write(b)
	return nil
}

func (ow *objectWriter) close() []byte {
	ow.buf.WriteByte('}')
	return ow.buf.Bytes()
}

// Line is one amount cell of a statement, addressed by path and column.
type Line struct {
	Statement   Kind
	Path        string
	Code        string
	Description string
	Column      Column
	Amount      decimal.Decimal
}

// CellKey returns the lookup key of a cell.
func CellKey(k Kind, path string, col Column) string {
	return string(k) + ":" + path + ":" + string(col)
}

// Flatten lists every amount cell of the statements in presentation order.
func Flatten(s *Statements) []Line {
	var out []Line
	walk(KindNetPosition, "", reflect.ValueOf(s.NetPosition), &out)
	walk(KindActivities, "", reflect.ValueOf(s.Activities), &out)
	walk(KindBalanceSheet, "", reflect.ValueOf(s.BalanceSheet), &out)
	walk(KindRevenuesExpenditures, "", reflect.ValueOf(s.RevenuesExpenditures), &out)
	return out
}

// Index keys the flattened cells by CellKey.
func Index(s *Statements) map[string]Line {
	lines := Flatten(s)
	m := make(map[string]Line, len(lines))
	for _, l := range lines {
		m[CellKey(l.Statement, l.Path, l.Column)] = l
	}
	return m
}

func walk(k Kind, path string, v reflect.Value, out *[]Line) {
	emit := func(code, desc string, col Column, amt decimal.Decimal) {
		*out = append(*out, Line{Statement: k, Path: path, Code: code, Description: desc, Column: col, Amount: amt})
	}

	switch x := v.Interface().(type) {
	case LineItem:
		emit(x.Code, x.Description, ColumnAmount, x.Amount)
		return
	case FundLineItem:
		emit(x.Code, x.Description, ColumnGeneralFund, x.GeneralFund)
		emit(x.Code, x.Description, ColumnNonMajorFunds, x.NonMajorFunds)
		return
	case ProgramLine:
		emit(x.Code, x.Description, ColumnExpenses, x.Expenses)
		emit(x.Code, x.Description, ColumnChargesForServices, x.ChargesForServices)
		emit(x.Code, x.Description, ColumnOperatingGrants, x.OperatingGrants)
		emit(x.Code, x.Description, ColumnNetExpenseRevenue, x.NetExpenseRevenue)
		return
	case GovernmentalActivities:
		for _, p := range x.Programs {
			walk(k, join(path, p.Key), reflect.ValueOf(p), out)
		}
		walk(k, join(path, "total_governmental"), reflect.ValueOf(x.TotalGovernmental), out)
		walk(k, join(path, "total_primary"), reflect.ValueOf(x.TotalPrimary), out)
		return
	case FunctionLines:
		for _, f := range x {
			walk(k, join(path, f.Key), reflect.ValueOf(f.FundLineItem), out)
		}
		return
	case BalanceValidation, FundColumns:
		return
	}

	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		walk(k, join(path, name), v.Field(i), out)
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Cells returns pointers to every amount cell of stmt, keyed by CellKey.
// stmt must be a pointer to one of the four statement structs.
func Cells(k Kind, stmt any) map[string]*decimal.Decimal {
	out := map[string]*decimal.Decimal{}
	cells(k, "", reflect.ValueOf(stmt).Elem(), out)
	return out
}

func cells(k Kind, path string, v reflect.Value, out map[string]*decimal.Decimal) {
	put := func(p string, col Column, f reflect.Value) {
		out[CellKey(k, p, col)] = f.Addr().Interface().(*decimal.Decimal)
	}

	switch x := v.Interface().(type) {
	case LineItem:
		put(path, ColumnAmount, v.FieldByName("Amount"))
		return
	case FundLineItem:
		put(path, ColumnGeneralFund, v.FieldByName("GeneralFund"))
		put(path, ColumnNonMajorFunds, v.FieldByName("NonMajorFunds"))
		return
	case ProgramLine:
		put(path, ColumnExpenses, v.FieldByName("Expenses"))
		put(path, ColumnChargesForServices, v.FieldByName("ChargesForServices"))
		put(path, ColumnOperatingGrants, v.FieldByName("OperatingGrants"))
		put(path, ColumnNetExpenseRevenue, v.FieldByName("NetExpenseRevenue"))
		return
	case GovernmentalActivities:
		programs := v.FieldByName("Programs")
		for i, p := range x.Programs {
			cells(k, join(path, p.Key), programs.Index(i), out)
		}
		cells(k, join(path, "total_governmental"), v.FieldByName("TotalGovernmental"), out)
		cells(k, join(path, "total_primary"), v.FieldByName("TotalPrimary"), out)
		return
	case FunctionLines:
		for i, f := range x {
			cells(k, join(path, f.Key), v.Index(i).FieldByName("FundLineItem"), out)
		}
		return
	case BalanceValidation, FundColumns:
		return
	}

	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		cells(k, join(path, name), v.Field(i), out)
	}
}
