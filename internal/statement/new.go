package statement

import (
	"reflect"
	"strings"
)

// New returns empty statements with every line labeled from the schema.
func New() *Statements {
	s := &Statements{}

	s.NetPosition.Title = KindNetPosition.Title()
	label(KindNetPosition, "", reflect.ValueOf(&s.NetPosition).Elem())

	s.Activities.Title = KindActivities.Title()
	ga := &s.Activities.GovernmentalActivities
	ga.Programs = make([]ProgramLine, 0, len(Programs))
	for _, p := range Programs {
		ga.Programs = append(ga.Programs, ProgramLine{Key: p.Key, Code: p.Code, Description: p.Description})
	}
	ga.TotalGovernmental = programTotal(Def(KindActivities, "governmental_activities.total_governmental"))
	ga.TotalPrimary = programTotal(Def(KindActivities, "governmental_activities.total_primary"))
	label(KindActivities, "", reflect.ValueOf(&s.Activities).Elem())

	s.BalanceSheet.Title = KindBalanceSheet.Title()
	s.BalanceSheet.Funds = DefaultFundColumns
	label(KindBalanceSheet, "", reflect.ValueOf(&s.BalanceSheet).Elem())

	re := &s.RevenuesExpenditures
	re.Title = KindRevenuesExpenditures.Title()
	re.Funds = DefaultFundColumns
	re.Expenditures.Current = make(FunctionLines, 0, len(ExpenditureFunctions))
	for _, f := range ExpenditureFunctions {
		re.Expenditures.Current = append(re.Expenditures.Current, FunctionLine{
			Key:          f.Key,
			FundLineItem: FundLineItem{Code: f.Code, Description: f.Description},
		})
	}
	label(KindRevenuesExpenditures, "", reflect.ValueOf(re).Elem())
	return s
}

func programTotal(d LineDef) ProgramLine {
	key := d.Path[strings.LastIndex(d.Path, ".")+1:]
	return ProgramLine{Key: key, Code: d.Code, Description: d.Description}
}

// label sets Code and Description on every addressable line under v.
func label(k Kind, path string, v reflect.Value) {
	switch v.Interface().(type) {
	case LineItem, FundLineItem:
		d := Def(k, path)
		v.FieldByName("Code").SetString(d.Code)
		v.FieldByName("Description").SetString(d.Description)
		return
	case ProgramLine, GovernmentalActivities, FunctionLines, BalanceValidation, FundColumns:
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
		label(k, join(path, name), v.Field(i))
	}
}
