package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

// Snapshot is the state a turn can be rolled back to.
type Snapshot struct {
	Seats    map[string]*Seat
	Tiles    []world.Tile
	Vehicles []Vehicle
	Pools    Pools
	Pending  Interaction
	Offers   []PowerOffer
	OfferSeq int
	LogSeq   int
}

func (s *Session) capture() *Snapshot {
	seats := make(map[string]*Seat, len(s.Seats))
	for id, seat := range s.Seats {
		seats[id] = seat.Clone()
	}
	return &Snapshot{
		Seats:    seats,
		Tiles:    world.CloneTiles(s.Tiles),
		Vehicles: cloneVehicles(s.Vehicles),
		Pools:    s.Pools.Clone(),
		Pending:  cloneInteraction(s.Pending),
		Offers:   cloneSlice(s.Offers),
		OfferSeq: s.OfferSeq,
		LogSeq:   s.LogSeq,
	}
}

// TakeSnapshot records the turn start for seatID.
func (s *Session) TakeSnapshot(seatID string) {
	if s.TurnStart == nil {
		s.TurnStart = map[string]*Snapshot{}
	}
	s.TurnStart[seatID] = s.capture()
	s.answers = nil
}

type offerAnswer struct {
	offer      PowerOffer
	accept     bool
	tokenFirst bool
}

// RestoreSnapshot puts the session back to seatID's turn start. The log
// loses every entry written since. Answers other seats gave to offers that
// were already open at the turn start are replayed, so they stay resolved.
func (s *Session) RestoreSnapshot(seatID string) bool {
	snap, ok := s.TurnStart[seatID]
	if !ok || snap == nil {
		return false
	}
	s.Seats = make(map[string]*Seat, len(snap.Seats))
	for id, seat := range snap.Seats {
		s.Seats[id] = seat.Clone()
	}
	s.Tiles = world.CloneTiles(snap.Tiles)
	s.Vehicles = cloneVehicles(snap.Vehicles)
	s.Pools = snap.Pools.Clone()
	s.Pending = cloneInteraction(snap.Pending)
	s.Offers = cloneSlice(snap.Offers)
	s.OfferSeq = snap.OfferSeq
	kept := s.Log[:0:0]
	for _, e := range s.Log {
		if e.Seq <= snap.LogSeq {
			kept = append(kept, e)
		}
	}
	s.Log = kept
	s.LogSeq = snap.LogSeq

	answers := s.answers
	s.answers = nil
	for _, a := range answers {
		if a.offer.ID > snap.OfferSeq || !s.dropOffer(a.offer.ID) {
			continue
		}
		s.applyOffer(a.offer, a.accept, a.tokenFirst)
	}
	return true
}

func (s *Session) dropOffer(id int) bool {
	for i, o := range s.Offers {
		if o.ID == id {
			s.Offers = append(s.Offers[:i:i], s.Offers[i+1:]...)
			return true
		}
	}
	return false
}

func cloneVehicles(in []Vehicle) []Vehicle {
	if in == nil {
		return nil
	}
	out := make([]Vehicle, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
