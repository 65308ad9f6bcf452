package action

import (
	"context"
	"sync"
	"time"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

var fixedNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func hex(q, r int) world.Hex { return world.Hex{Q: q, R: r} }

func planet(q, r int, t world.PlanetType) world.Tile {
	return world.Tile{Hex: hex(q, r), Sector: 1, Type: t}
}

func structure(t world.Tile, seat string, kind world.StructureKind) world.Tile {
	t.Owner = seat
	t.Structure = kind
	return t
}

// newGame returns a two seat session in the action stage of round 1.
// Seat a plays Terrans and moves first, seat b plays Xenos.
func newGame(tiles ...world.Tile) *game.Session {
	s := game.NewSession("s1", "table", 7, fixedNow)
	a := game.NewSeat("a", "Alice", game.SeatHuman)
	b := game.NewSeat("b", "Bob", game.SeatHuman)
	s.AddSeat(a)
	s.AddSeat(b)
	fa, _ := game.LookupFaction(game.FactionTerrans)
	fb, _ := game.LookupFaction(game.FactionXenos)
	a.AssignFaction(fa)
	b.AssignFaction(fb)
	s.Tiles = tiles
	s.TurnOrder = []string{"a", "b"}
	s.Phase = game.PhaseMain
	s.Stage = game.StageActions
	s.Round = 1
	s.Pools = game.Pools{
		Boosters:          game.BoosterIDs(),
		StandardTech:      game.StandardTechIDs(),
		AdvancedTech:      game.AdvancedTechIDs(),
		PowerActionsUsed:  map[game.PowerActionID]bool{},
		FederationRewards: map[game.FederationRewardID]int{"fed_vp12": 1},
		RoundMissions:     []game.MissionID{"mission_mine2", "mission_trading3", "mission_big5", "mission_federation5", "mission_gaia3", "mission_research2"},
		FinalMissions:     []game.FinalMissionID{"final_structures", "final_types"},
		TrackTop:          map[game.Track]string{},
	}
	s.BeginTurn("a")
	return s
}

type memRegistry struct {
	mu       sync.Mutex
	sessions map[string]*game.Session
}

func newMemRegistry(sessions ...*game.Session) *memRegistry {
	r := &memRegistry{sessions: map[string]*game.Session{}}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *memRegistry) Create(_ context.Context, s *game.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *memRegistry) List(context.Context) ([]ports.SessionSummary, error) { return nil, nil }

func (r *memRegistry) RunInSession(_ context.Context, id string, fn func(*game.Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ports.ErrNotFound
	}
	return fn(s)
}

func (r *memRegistry) BindSeat(context.Context, string, string) error         { return nil }
func (r *memRegistry) SessionForSeat(context.Context, string) (string, error) { return "", nil }
func (r *memRegistry) BindConnection(string, string)                          {}
func (r *memRegistry) SeatForConnection(string) (string, bool)                { return "", false }
func (r *memRegistry) UnbindConnection(string)                                {}
func (r *memRegistry) EvictIdle(context.Context, time.Time) ([]string, error) { return nil, nil }

type recordingBroadcaster struct{ events []ports.Event }

func (b *recordingBroadcaster) Publish(e ports.Event) { b.events = append(b.events, e) }

type countingKicker struct{ kicks []string }

func (k *countingKicker) Kick(id string) { k.kicks = append(k.kicks, id) }

type recordingMetrics struct {
	accepted []string
	rejected []string
	failed   []string
}

func (m *recordingMetrics) RecordAccepted(kind string) { m.accepted = append(m.accepted, kind) }
func (m *recordingMetrics) RecordRejected(kind, code string) {
	m.rejected = append(m.rejected, kind+":"+code)
}
func (m *recordingMetrics) RecordFailure(kind string) { m.failed = append(m.failed, kind) }
