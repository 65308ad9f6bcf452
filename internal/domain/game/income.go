package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

const BaseIncomeSource = "base"

// IncomeFor computes a seat's round income. Resources can be summed; power
// items are returned separately because their order can matter.
func (s *Session) IncomeFor(seat *Seat) (Resources, []IncomeItem) {
	res := Resources{Ore: 1, Knowledge: 1}
	var items []IncomeItem

	for i := 0; i < s.StructureCount(seat.ID, world.StructureMine) && i < len(mineOreIncome); i++ {
		res.Ore += mineOreIncome[i]
	}
	for i := 0; i < s.StructureCount(seat.ID, world.StructureTradingStation) && i < len(tradingStationCredits); i++ {
		res.Credits += tradingStationCredits[i]
	}
	res.Knowledge += researchLabKnowledge * s.StructureCount(seat.ID, world.StructureResearchLab)
	if s.StructureCount(seat.ID, world.StructurePlanetaryInstitute) > 0 {
		items = append(items,
			IncomeItem{Source: "planetary_institute", Charge: planetaryInstituteCharge},
			IncomeItem{Source: "planetary_institute", Tokens: planetaryInstituteTokens},
		)
	}
	if s.StructureCount(seat.ID, world.StructureAcademy) > 0 {
		res.Knowledge += firstAcademyKnowledge
	}

	for _, t := range Tracks {
		r, charge := trackIncome(t, seat.Level(t))
		res = res.Add(r)
		if charge > 0 {
			items = append(items, IncomeItem{Source: string(t), Charge: charge})
		}
	}

	addGrant := func(source string, g Grant) {
		res = res.Add(g.Resources)
		if g.Charge > 0 {
			items = append(items, IncomeItem{Source: source, Charge: g.Charge})
		}
		if g.Tokens > 0 {
			items = append(items, IncomeItem{Source: source, Tokens: g.Tokens})
		}
	}
	if b, ok := LookupBooster(seat.Booster); ok {
		addGrant(string(b.ID), b.Income)
	}
	for _, t := range seat.ActiveTech() {
		addGrant(string(t.ID), t.Income)
	}
	return res, items
}

// ApplyIncome grants a seat's income. It returns an IncomeChoice when the
// seat has to pick the order of its power items.
func (s *Session) ApplyIncome(seat *Seat) (IncomeChoice, bool) {
	res, items := s.IncomeFor(seat)
	seat.GainResources(res)
	if !orderMatters(seat.Power, items) {
		for _, it := range items {
			applyItem(&seat.Power, it)
		}
		return IncomeChoice{}, false
	}
	if seat.IsBot() {
		for _, idx := range BestIncomeOrder(seat.Power, items, nil) {
			applyItem(&seat.Power, items[idx])
		}
		return IncomeChoice{}, false
	}
	return IncomeChoice{Seat: seat.ID, Items: items, Start: seat.Power}, true
}

func applyItem(p *PowerBowls, it IncomeItem) {
	p.GainTokens(it.Tokens)
	p.Charge(it.Charge)
}

func applyOrder(p PowerBowls, items []IncomeItem, order []int) PowerBowls {
	for _, idx := range order {
		applyItem(&p, items[idx])
	}
	return p
}

func orderMatters(p PowerBowls, items []IncomeItem) bool {
	if len(items) < 2 {
		return false
	}
	var first PowerBowls
	same := true
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	n := 0
	permute(idx, 0, func(order []int) {
		out := applyOrder(p, items, order)
		if n == 0 {
			first = out
		} else if out != first {
			same = false
		}
		n++
	})
	return !same
}

// BestIncomeOrder returns the order of the remaining items that ends with
// the most power in bowl 3, then bowl 2. Ties keep the earliest order.
func BestIncomeOrder(p PowerBowls, items []IncomeItem, remaining []int) []int {
	if remaining == nil {
		remaining = make([]int, len(items))
		for i := range remaining {
			remaining[i] = i
		}
	}
	best := append([]int(nil), remaining...)
	bestOut := applyOrder(p, items, best)
	permute(append([]int(nil), remaining...), 0, func(order []int) {
		out := applyOrder(p, items, order)
		if out.Bowl3 > bestOut.Bowl3 || out.Bowl3 == bestOut.Bowl3 && out.Bowl2 > bestOut.Bowl2 {
			best = append(best[:0], order...)
			bestOut = out
		}
	})
	return best
}

func permute(a []int, k int, visit func([]int)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}

func (s *Session) incomeHead(seatID string) (*IncomeChoice, *Rejection) {
	if len(s.IncomeQueue) == 0 || s.IncomeQueue[0].Seat != seatID {
		return nil, Reject(CodeNoPending, "no income choice for seat")
	}
	return &s.IncomeQueue[0], nil
}

// SelectIncome applies one item of the seat's open income choice.
func (s *Session) SelectIncome(seatID string, idx int) *Rejection {
	choice, rej := s.incomeHead(seatID)
	if rej != nil {
		return rej
	}
	if idx < 0 || idx >= len(choice.Items) || choice.IsApplied(idx) {
		return Reject(CodeInvalidOption, "income item %d not available", idx)
	}
	seat := s.Seats[seatID]
	applyItem(&seat.Power, choice.Items[idx])
	choice.Applied = append(choice.Applied, idx)
	if len(choice.Remaining()) == 0 {
		s.popIncome()
	}
	return nil
}

// UndoIncome takes back the last selected item.
func (s *Session) UndoIncome(seatID string) *Rejection {
	choice, rej := s.incomeHead(seatID)
	if rej != nil {
		return rej
	}
	if len(choice.Applied) == 0 {
		return Reject(CodeInvalidOption, "nothing to undo")
	}
	choice.Applied = choice.Applied[:len(choice.Applied)-1]
	s.Seats[seatID].Power = applyOrder(choice.Start, choice.Items, choice.Applied)
	return nil
}

// AutoIncome applies the remaining items in the best order.
func (s *Session) AutoIncome(seatID string) *Rejection {
	choice, rej := s.incomeHead(seatID)
	if rej != nil {
		return rej
	}
	seat := s.Seats[seatID]
	for _, idx := range BestIncomeOrder(seat.Power, choice.Items, choice.Remaining()) {
		applyItem(&seat.Power, choice.Items[idx])
	}
	s.popIncome()
	return nil
}

// FinishIncome applies the remaining items in listed order.
func (s *Session) FinishIncome(seatID string) *Rejection {
	choice, rej := s.incomeHead(seatID)
	if rej != nil {
		return rej
	}
	seat := s.Seats[seatID]
	for _, idx := range choice.Remaining() {
		applyItem(&seat.Power, choice.Items[idx])
	}
	s.popIncome()
	return nil
}

func (s *Session) popIncome() {
	s.Logf(s.IncomeQueue[0].Seat, "income", "")
	s.IncomeQueue = s.IncomeQueue[1:]
	if len(s.IncomeQueue) == 0 {
		s.IncomeQueue = nil
		if s.Phase == PhaseMain && s.Stage == StageIncome {
			s.BeginActionPhase()
		}
	}
}
