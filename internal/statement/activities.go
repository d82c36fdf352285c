package statement

// Activities is the government-wide Statement of Activities.
type Activities struct {
	Title                  string                 `json:"title"`
	GovernmentalActivities GovernmentalActivities `json:"governmental_activities"`
	GeneralRevenues        GeneralRevenues        `json:"general_revenues"`
	NetPosition            ActivitiesNetPosition  `json:"net_position"`
}

// GovernmentalActivities holds one row per program in Programs order. It
// encodes as a single JSON object keyed by program key followed by the totals.
type GovernmentalActivities struct {
	Programs          []ProgramLine
	TotalGovernmental ProgramLine
	TotalPrimary      ProgramLine
}

type GeneralRevenues struct {
	PropertyTaxesGeneral LineItem `json:"property_taxes_general"`
	PropertyTaxesDebt    LineItem `json:"property_taxes_debt"`
	Chapter313Payments   LineItem `json:"chapter_313_payments"`
	InvestmentEarnings   LineItem `json:"investment_earnings"`
	GrantsContributions  LineItem `json:"grants_contributions"`
	Miscellaneous        LineItem `json:"miscellaneous"`
	TotalGeneralRevenues LineItem `json:"total_general_revenues"`
}

type ActivitiesNetPosition struct {
	ChangeInNetPosition  LineItem `json:"change_in_net_position"`
	NetPositionBeginning LineItem `json:"net_position_beginning"`
	NetPositionEnding    LineItem `json:"net_position_ending"`
}

// Program returns a pointer to the row with key, or nil.
func (g *GovernmentalActivities) Program(key string) *ProgramLine {
	for i := range g.Programs {
		if g.Programs[i].Key == key {
			return &g.Programs[i]
		}
	}
	return nil
}

// Recompute derives net expense per program, the governmental totals, the
// general revenue total and the change in net position.
func (s *Activities) Recompute() {
	ga := &s.GovernmentalActivities
	tg := ProgramLine{Key: ga.TotalGovernmental.Key, Code: ga.TotalGovernmental.Code, Description: ga.TotalGovernmental.Description}
	for i := range ga.Programs {
		p := &ga.Programs[i]
		p.NetExpenseRevenue = p.ChargesForServices.Add(p.OperatingGrants).Sub(p.Expenses)
		tg.Expenses = tg.Expenses.Add(p.Expenses)
		tg.ChargesForServices = tg.ChargesForServices.Add(p.ChargesForServices)
		tg.OperatingGrants = tg.OperatingGrants.Add(p.OperatingGrants)
		tg.NetExpenseRevenue = tg.NetExpenseRevenue.Add(p.NetExpenseRevenue)
	}
	ga.TotalGovernmental = tg

	tp := tg
	tp.Key, tp.Code, tp.Description = ga.TotalPrimary.Key, ga.TotalPrimary.Code, ga.TotalPrimary.Description
	ga.TotalPrimary = tp

	gr := &s.GeneralRevenues
	gr.TotalGeneralRevenues.Amount = Sum(gr.PropertyTaxesGeneral, gr.PropertyTaxesDebt, gr.Chapter313Payments,
		gr.InvestmentEarnings, gr.GrantsContributions, gr.Miscellaneous)

	np := &s.NetPosition
	np.ChangeInNetPosition.Amount = tg.NetExpenseRevenue.Add(gr.TotalGeneralRevenues.Amount)
	np.NetPositionEnding.Amount = np.NetPositionBeginning.Amount.Add(np.ChangeInNetPosition.Amount)
}
