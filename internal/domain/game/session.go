package game

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

type Phase string

const (
	PhaseLobby             Phase = "lobby"
	PhaseFactionSelect     Phase = "faction_select"
	PhaseStartingPlacement Phase = "starting_placement"
	PhaseBonusSelect       Phase = "bonus_select"
	PhaseMain              Phase = "main"
	PhaseGameEnd           Phase = "game_end"
)

type Stage string

const (
	StageNone    Stage = ""
	StageIncome  Stage = "income"
	StageActions Stage = "actions"
)

const (
	MaxSeats      = 4
	DefaultLogCap = 200
)

// Placement is one entry of the starting placement order.
type Placement struct {
	Seat      string              `json:"seat"`
	Structure world.StructureKind `json:"structure"`
}

type LogEntry struct {
	Seq    int       `json:"seq"`
	Round  int       `json:"round"`
	Seat   string    `json:"seat,omitempty"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Seed  int64  `json:"seed"`
	Phase Phase  `json:"phase"`
	Stage Stage  `json:"stage,omitempty"`

	Seats            map[string]*Seat `json:"seats"`
	JoinOrder        []string         `json:"join_order"`
	TurnOrder        []string         `json:"turn_order"`
	NextTurnOrder    []string         `json:"next_turn_order,omitempty"`
	CurrentSeatIndex int              `json:"current_seat_index"`
	Round            int              `json:"round"`
	PlacementQueue   []Placement      `json:"placement_queue,omitempty"`
	BonusQueue       []string         `json:"bonus_queue,omitempty"`

	Tiles    []world.Tile `json:"tiles"`
	Pools    Pools        `json:"pools"`
	Vehicles []Vehicle    `json:"vehicles,omitempty"`

	Pending     Interaction    `json:"-"`
	Offers      []PowerOffer   `json:"offers,omitempty"`
	IncomeQueue []IncomeChoice `json:"income_queue,omitempty"`
	OfferSeq    int            `json:"-"`

	Log    []LogEntry `json:"log"`
	LogSeq int        `json:"log_seq"`
	LogCap int        `json:"-"`

	TurnStart map[string]*Snapshot `json:"-"`
	// answers are the offer responses given since the last snapshot. A
	// reset replays the ones for offers older than the snapshot.
	answers []offerAnswer

	FinalScored bool      `json:"final_scored"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	now func() time.Time
}

func NewSession(id, name string, seed int64, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	at := now()
	return &Session{
		ID:        id,
		Name:      name,
		Seed:      seed,
		Phase:     PhaseLobby,
		Seats:     map[string]*Seat{},
		LogCap:    DefaultLogCap,
		TurnStart: map[string]*Snapshot{},
		CreatedAt: at,
		UpdatedAt: at,
		now:       now,
	}
}

func (s *Session) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Session) Seat(id string) (*Seat, bool) {
	seat, ok := s.Seats[id]
	return seat, ok
}

// AddSeat appends a seat in join order. It only works in the lobby.
func (s *Session) AddSeat(seat *Seat) bool {
	if s.Phase != PhaseLobby || len(s.JoinOrder) >= MaxSeats {
		return false
	}
	if _, exists := s.Seats[seat.ID]; exists {
		return false
	}
	s.Seats[seat.ID] = seat
	s.JoinOrder = append(s.JoinOrder, seat.ID)
	return true
}

// OrderedSeats returns seats in turn order, falling back to join order.
func (s *Session) OrderedSeats() []*Seat {
	order := s.TurnOrder
	if len(order) == 0 {
		order = s.JoinOrder
	}
	out := make([]*Seat, 0, len(order))
	for _, id := range order {
		if seat, ok := s.Seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out
}

func (s *Session) Logf(seat, action, detail string) {
	s.LogSeq++
	s.Log = append(s.Log, LogEntry{Seq: s.LogSeq, Round: s.Round, Seat: seat, Action: action, Detail: detail, At: s.Now()})
	limit := s.LogCap
	if limit <= 0 {
		limit = DefaultLogCap
	}
	if over := len(s.Log) - limit; over > 0 {
		s.Log = append([]LogEntry(nil), s.Log[over:]...)
	}
}

// Touch records an accepted command.
func (s *Session) Touch() {
	s.Version++
	s.UpdatedAt = s.Now()
}

func (s *Session) TileAt(h world.Hex) (*world.Tile, bool) {
	idx := world.FindTile(s.Tiles, h)
	if idx < 0 {
		return nil, false
	}
	return &s.Tiles[idx], true
}

// Count measures what a seat has on the board.
func (s *Session) Count(seatID string, m Measure) int {
	seat := s.Seats[seatID]
	switch m {
	case MeasureMines:
		return s.countStructure(seatID, world.StructureMine)
	case MeasureTradingStations:
		return s.countStructure(seatID, world.StructureTradingStation)
	case MeasureResearchLabs:
		return s.countStructure(seatID, world.StructureResearchLab)
	case MeasureBigBuildings:
		return s.countStructure(seatID, world.StructurePlanetaryInstitute) + s.countStructure(seatID, world.StructureAcademy)
	case MeasureStructures:
		n := 0
		for _, t := range s.Tiles {
			if t.Owner == seatID && t.Structure != world.StructureNone {
				n++
			}
			if t.Secondary == seatID {
				n++
			}
		}
		return n
	case MeasureGaiaPlanets:
		n := 0
		for _, t := range s.Tiles {
			if t.Type == world.PlanetGaia && t.OccupiedBy(seatID) {
				n++
			}
		}
		return n
	case MeasurePlanetTypes:
		return len(s.PlanetTypes(seatID))
	case MeasureFederatedStructures:
		n := 0
		for _, t := range s.Tiles {
			if t.FederatedBy(seatID) && (t.Owner == seatID && t.Structure != world.StructureNone || t.Secondary == seatID) {
				n++
			}
		}
		return n
	case MeasureSectors:
		seen := map[int]bool{}
		for _, t := range s.Tiles {
			if t.OccupiedBy(seatID) && t.Structure != world.StructureNone {
				seen[t.Sector] = true
			}
		}
		return len(seen)
	case MeasureSatellites:
		n := 0
		for _, t := range s.Tiles {
			if t.HasSatellite(seatID) {
				n++
			}
		}
		return n
	case MeasureFederations:
		if seat == nil {
			return 0
		}
		return len(seat.Federations)
	}
	return 0
}

func (s *Session) countStructure(seatID string, kind world.StructureKind) int {
	n := 0
	for _, t := range s.Tiles {
		if t.Owner == seatID && t.Structure == kind {
			n++
		}
		if kind == world.StructureMine && t.Secondary == seatID {
			n++
		}
	}
	return n
}

func (s *Session) StructureCount(seatID string, kind world.StructureKind) int {
	return s.countStructure(seatID, kind)
}

// PlanetTypes lists the distinct planet types a seat occupies, sorted.
func (s *Session) PlanetTypes(seatID string) []world.PlanetType {
	seen := map[world.PlanetType]bool{}
	for _, t := range s.Tiles {
		if t.OccupiedBy(seatID) && t.Structure != world.StructureNone && t.Type.IsPlanet() {
			seen[t.Type] = true
		}
	}
	out := make([]world.PlanetType, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Distance from h to the nearest tile where the seat is present.
func (s *Session) Distance(seatID string, h world.Hex) (int, bool) {
	best, found := 0, false
	for _, t := range s.Tiles {
		present := t.OccupiedBy(seatID) && t.Structure != world.StructureNone
		if t.Station && t.Owner == seatID {
			present = true
		}
		if !present {
			continue
		}
		d := world.Distance(t.Hex, h)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

// MarshalJSON renders the session with the pending interaction tagged by kind.
func (s *Session) MarshalJSON() ([]byte, error) {
	type alias Session
	return json.Marshal(struct {
		*alias
		Pending json.RawMessage `json:"pending,omitempty"`
	}{
		alias:   (*alias)(s),
		Pending: marshalInteraction(s.Pending),
	})
}
