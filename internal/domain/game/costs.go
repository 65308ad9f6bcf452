package game

import (
	"strconv"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// BuildCost is the full price of placing a mine on one tile.
type BuildCost struct {
	Resources      Resources `json:"resources"`
	Distance       int       `json:"distance"`
	RangeQIC       int       `json:"range_qic"`
	TerraformSteps int       `json:"terraform_steps"`
	FreeSteps      int       `json:"free_steps"`
	Secondary      bool      `json:"secondary,omitempty"`
	Gaiaformer     bool      `json:"gaiaformer,omitempty"`
}

// RangeQIC is the QIC needed to reach distance with the given range.
func RangeQIC(distance, reach int) int {
	if distance <= reach {
		return 0
	}
	return (distance - reach + 1) / 2
}

// ComputeBuildCost prices a mine for seat on h. It does not check
// affordability or the structure limit.
func (s *Session) ComputeBuildCost(seat *Seat, h world.Hex) (BuildCost, *Rejection) {
	tile, ok := s.TileAt(h)
	if !ok {
		return BuildCost{}, Reject(CodeInvalidTarget, "no tile at %v", h)
	}
	if !tile.Type.IsPlanet() {
		return BuildCost{}, Reject(CodeInvalidTarget, "cannot build in empty space")
	}
	cost := BuildCost{Resources: StructureCost(world.StructureMine)}

	switch {
	case tile.Owner == "":
	case tile.Owner != seat.ID && seat.Is(FactionLantids) && tile.Secondary == "" && tile.Structure != world.StructureNone:
		cost.Secondary = true
	default:
		return BuildCost{}, Reject(CodeInvalidTarget, "tile already occupied")
	}

	if !cost.Secondary {
		switch tile.Type {
		case world.PlanetTransdim:
			return BuildCost{}, Reject(CodeInvalidTarget, "transdim planet needs a gaia project first")
		case world.PlanetGaia:
			switch {
			case tile.Gaiaformer == seat.ID:
				cost.Gaiaformer = true
			case tile.Gaiaformer != "":
				return BuildCost{}, Reject(CodeInvalidTarget, "gaiaformer of another seat")
			case seat.Is(FactionGleens):
				cost.Resources.Ore++
			default:
				cost.Resources.QIC++
			}
		default:
			steps, ok := world.TerraformSteps(seat.HomeType(), tile.Type)
			if !ok {
				return BuildCost{}, Reject(CodeInvalidTarget, "planet cannot be terraformed")
			}
			cost.TerraformSteps = steps
			cost.FreeSteps = min(steps, seat.PendingTerraformSteps)
			cost.Resources.Ore += (steps - cost.FreeSteps) * TerraformOrePerStep(seat.Level(TrackTerraforming))
		}
	}

	if d, present := s.Distance(seat.ID, h); present {
		cost.Distance = d
		cost.RangeQIC = RangeQIC(d, seat.Range())
		cost.Resources.QIC += cost.RangeQIC
	}
	return cost, nil
}

// UpgradeCost prices turning the seat's structure on h into to.
func (s *Session) UpgradeCost(seat *Seat, h world.Hex, to world.StructureKind) (Resources, *Rejection) {
	tile, ok := s.TileAt(h)
	if !ok || tile.Owner != seat.ID || tile.Structure == world.StructureNone {
		return Resources{}, Reject(CodeInvalidTarget, "no own structure at %v", h)
	}
	if !CanUpgrade(tile.Structure, to) {
		return Resources{}, Reject(CodeInvalidTarget, "%s cannot become %s", tile.Structure, to)
	}
	cost := StructureCost(to)
	if to == world.StructureTradingStation && s.hasNeighbor(seat.ID, h) {
		cost.Credits = TradingStationNeighborCredits
	}
	return cost, nil
}

func (s *Session) hasNeighbor(seatID string, h world.Hex) bool {
	for _, t := range s.Tiles {
		if world.Distance(t.Hex, h) > NeighborRadius {
			continue
		}
		if t.Owner != "" && t.Owner != seatID && t.Structure != world.StructureNone {
			return true
		}
		if t.Secondary != "" && t.Secondary != seatID {
			return true
		}
	}
	return false
}

// CollectOffers scans around h for other seats that may charge power.
func (s *Session) CollectOffers(builder string, h world.Hex) []PowerOffer {
	best := map[string]int{}
	for _, t := range s.Tiles {
		if world.Distance(t.Hex, h) > NeighborRadius {
			continue
		}
		if t.Owner != "" && t.Owner != builder && t.Structure != world.StructureNone {
			if v := s.PowerValue(s.Seats[t.Owner], t.Structure); v > best[t.Owner] {
				best[t.Owner] = v
			}
		}
		if t.Secondary != "" && t.Secondary != builder && best[t.Secondary] < 1 {
			best[t.Secondary] = 1
		}
	}
	var out []PowerOffer
	for _, seat := range s.OrderedSeats() {
		value, ok := best[seat.ID]
		if !ok {
			continue
		}
		amount := min(value, seat.Power.Chargeable(), seat.Score+1)
		if amount <= 0 {
			continue
		}
		out = append(out, PowerOffer{
			From:        builder,
			To:          seat.ID,
			Amount:      amount,
			VPCost:      amount - 1,
			Hex:         h,
			Round:       s.Round,
			TokenOption: seat.Is(FactionTaklons) && s.StructureCount(seat.ID, world.StructurePlanetaryInstitute) > 0,
		})
	}
	return out
}

// QueueOffers resolves trivial and bot offers at once and queues the rest.
func (s *Session) QueueOffers(offers []PowerOffer) {
	for _, o := range offers {
		s.OfferSeq++
		o.ID = s.OfferSeq
		seat := s.Seats[o.To]
		if seat == nil {
			continue
		}
		if (o.VPCost == 0 && !o.TokenOption) || seat.IsBot() {
			s.applyOffer(o, true, false)
			continue
		}
		s.Offers = append(s.Offers, o)
	}
}

// NextOffer returns the earliest open offer for seatID.
func (s *Session) NextOffer(seatID string) (PowerOffer, bool) {
	for _, o := range s.Offers {
		if o.To == seatID {
			return o, true
		}
	}
	return PowerOffer{}, false
}

// ResolveOffer answers the earliest offer addressed to seatID.
func (s *Session) ResolveOffer(seatID string, accept, tokenFirst bool) *Rejection {
	for i, o := range s.Offers {
		if o.To != seatID {
			continue
		}
		s.Offers = append(s.Offers[:i:i], s.Offers[i+1:]...)
		s.applyOffer(o, accept, tokenFirst)
		s.answers = append(s.answers, offerAnswer{offer: o, accept: accept, tokenFirst: tokenFirst})
		return nil
	}
	return Reject(CodeNoPending, "no open offer")
}

func (s *Session) applyOffer(o PowerOffer, accept, tokenFirst bool) {
	seat := s.Seats[o.To]
	if !accept {
		s.Logf(o.To, "decline_power", "")
		return
	}
	if o.TokenOption && tokenFirst {
		seat.Power.GainTokens(1)
	}
	amount := min(o.Amount, seat.Power.Chargeable(), seat.Score+1)
	charged := seat.Power.Charge(amount)
	if o.TokenOption && !tokenFirst {
		seat.Power.GainTokens(1)
	}
	cost := max(charged-1, 0)
	seat.AddScore(CategoryPowerReceivedCost, -cost, s.Round, "power from "+o.From)
	s.Logf(o.To, "accept_power", strconv.Itoa(charged))
}

// ExpireOffers declines every offer still open.
func (s *Session) ExpireOffers() {
	for _, o := range s.Offers {
		s.Logf(o.To, "offer_expired", strconv.Itoa(o.Amount))
	}
	s.Offers = nil
}
