package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

const FederationThreshold = 7

// FederationPlan is a validated federation ready to be formed.
type FederationPlan struct {
	Buildings  []world.Hex
	Satellites []world.Hex
	Power      int
	TokenCost  int
	QICCost    int
}

// PlanFederation checks that buildings and satellites form one connected
// group worth at least FederationThreshold power and that the seat can pay
// for the satellites.
func (s *Session) PlanFederation(seat *Seat, buildings, satellites []world.Hex) (FederationPlan, *Rejection) {
	if len(buildings) == 0 {
		return FederationPlan{}, Reject(CodeInvalidTarget, "federation needs buildings")
	}
	seen := map[world.Hex]bool{}
	plan := FederationPlan{Buildings: buildings, Satellites: satellites}
	for _, h := range buildings {
		if seen[h] {
			return FederationPlan{}, Reject(CodeInvalidTarget, "duplicate hex %v", h)
		}
		seen[h] = true
		tile, ok := s.TileAt(h)
		if !ok {
			return FederationPlan{}, Reject(CodeInvalidTarget, "no tile at %v", h)
		}
		if tile.FederatedBy(seat.ID) {
			return FederationPlan{}, Reject(CodeInvalidTarget, "%v already federated", h)
		}
		switch {
		case tile.Owner == seat.ID && tile.Structure != world.StructureNone:
			plan.Power += s.PowerValue(seat, tile.Structure)
		case tile.Secondary == seat.ID:
			plan.Power++
		case tile.Owner == seat.ID && tile.Station:
			plan.Power++
		default:
			return FederationPlan{}, Reject(CodeInvalidTarget, "no own building at %v", h)
		}
	}
	for _, h := range satellites {
		if seen[h] {
			return FederationPlan{}, Reject(CodeInvalidTarget, "duplicate hex %v", h)
		}
		seen[h] = true
		tile, ok := s.TileAt(h)
		if !ok {
			return FederationPlan{}, Reject(CodeInvalidTarget, "no tile at %v", h)
		}
		if tile.Structure != world.StructureNone || tile.Station || tile.HasSatellite(seat.ID) {
			return FederationPlan{}, Reject(CodeInvalidTarget, "satellite cannot go on %v", h)
		}
	}
	if !connected(seen) {
		return FederationPlan{}, RejectUser(CodeFederation, "federation must be one connected group")
	}
	if plan.Power < FederationThreshold {
		return FederationPlan{}, RejectUser(CodeFederation, "insufficient federation threshold: %d of %d", plan.Power, FederationThreshold)
	}
	if seat.Is(FactionIvits) {
		plan.QICCost = len(satellites)
		if seat.Resources.QIC < plan.QICCost {
			return FederationPlan{}, RejectUser(CodeInsufficientQIC, "satellites need %d QIC", plan.QICCost)
		}
	} else {
		plan.TokenCost = len(satellites)
		if seat.Power.Tokens() < plan.TokenCost {
			return FederationPlan{}, RejectUser(CodeInsufficientPower, "satellites need %d power tokens", plan.TokenCost)
		}
	}
	if len(s.AvailableFederationRewards()) == 0 {
		return FederationPlan{}, Reject(CodeInvalidOption, "no federation reward left")
	}
	return plan, nil
}

// FormFederation pays for the plan, marks the board and opens the reward
// choice.
func (s *Session) FormFederation(seat *Seat, plan FederationPlan) {
	seat.Power.RemoveTokens(plan.TokenCost)
	seat.Resources.QIC -= plan.QICCost
	for _, h := range plan.Buildings {
		tile, _ := s.TileAt(h)
		tile.Federated = append(tile.Federated, seat.ID)
	}
	for _, h := range plan.Satellites {
		tile, _ := s.TileAt(h)
		tile.Satellites = append(tile.Satellites, seat.ID)
		tile.Federated = append(tile.Federated, seat.ID)
	}
	hexes := append(cloneSlice(plan.Buildings), plan.Satellites...)
	s.Pending = &ChooseReward{Seat: seat.ID, Options: s.AvailableFederationRewards(), Hexes: hexes}
}

func (s *Session) AvailableFederationRewards() []FederationRewardID {
	var out []FederationRewardID
	for _, id := range FederationRewardIDs() {
		if s.Pools.FederationRewards[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

// GrantFederation hands out a federation reward and records it on the seat.
func (s *Session) GrantFederation(seat *Seat, id FederationRewardID, hexes []world.Hex, fromTrack bool) {
	reward, ok := LookupFederationReward(id)
	if !ok {
		return
	}
	reward.Grant.ApplyTo(seat, CategoryVehicleReward, "federation "+string(id), s.Round)
	if reward.Green {
		seat.GreenFederations++
	}
	seat.Federations = append(seat.Federations, FederationRecord{Reward: id, Hexes: cloneSlice(hexes), Round: s.Round, FromTrack: fromTrack})
	if !fromTrack {
		s.Trigger(seat, EventFederation, 1)
	}
}

// RescoreFederation grants an owned reward again without a new credential.
func (s *Session) RescoreFederation(seat *Seat, id FederationRewardID) bool {
	for _, f := range seat.Federations {
		if f.Reward != id {
			continue
		}
		reward, _ := LookupFederationReward(id)
		reward.Grant.ApplyTo(seat, CategoryVehicleReward, "rescore "+string(id), s.Round)
		return true
	}
	return false
}

func connected(hexes map[world.Hex]bool) bool {
	var start world.Hex
	for h := range hexes {
		start = h
		break
	}
	visited := map[world.Hex]bool{start: true}
	queue := []world.Hex{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if hexes[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(hexes)
}
