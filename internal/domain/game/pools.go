package game

import (
	"sort"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

// Event is something a seat did that missions and tiles can reward.
type Event string

const (
	EventBuildMine           Event = "build_mine"
	EventBuildGaiaMine       Event = "build_gaia_mine"
	EventBuildTradingStation Event = "build_trading_station"
	EventBuildBigBuilding    Event = "build_big_building"
	EventFederation          Event = "federation"
	EventTerraformStep       Event = "terraform_step"
	EventResearchStep        Event = "research_step"
)

// Measure counts something a seat has on the board.
type Measure string

const (
	MeasureMines               Measure = "mines"
	MeasureTradingStations     Measure = "trading_stations"
	MeasureResearchLabs        Measure = "research_labs"
	MeasureBigBuildings        Measure = "big_buildings"
	MeasureGaiaPlanets         Measure = "gaia_planets"
	MeasurePlanetTypes         Measure = "planet_types"
	MeasureStructures          Measure = "structures"
	MeasureFederatedStructures Measure = "federated_structures"
	MeasureSectors             Measure = "sectors"
	MeasureSatellites          Measure = "satellites"
	MeasureFederations         Measure = "federations"
)

type SpecialID string

const (
	SpecialBoosterTerraform SpecialID = "booster_terraform"
	SpecialBoosterRange     SpecialID = "booster_range"
	SpecialTechCharge       SpecialID = "tech_charge4"
	SpecialAdvancedOre      SpecialID = "adv_ore3"
	SpecialAcademyQIC       SpecialID = "academy_qic"
	SpecialIvitsStation     SpecialID = "ivits_station"
)

type PassiveID string

const (
	PassiveBigBuildingPower4 PassiveID = "big_building_power4"
)

// Boosters

type BoosterID string

type Booster struct {
	ID      BoosterID `json:"id"`
	Income  Grant     `json:"income"`
	Special SpecialID `json:"special,omitempty"`
	PassPer Measure   `json:"pass_per,omitempty"`
	PassVP  int       `json:"pass_vp,omitempty"`
}

var boosters = []Booster{
	{ID: "booster_ore_knowledge", Income: Grant{Resources: Resources{Ore: 1, Knowledge: 1}}},
	{ID: "booster_tokens_ore", Income: Grant{Tokens: 2, Resources: Resources{Ore: 1}}},
	{ID: "booster_credits_qic", Income: Grant{Resources: Resources{Credits: 2, QIC: 1}}},
	{ID: "booster_terraform", Income: Grant{Resources: Resources{Credits: 2}}, Special: SpecialBoosterTerraform},
	{ID: "booster_range", Income: Grant{Charge: 2}, Special: SpecialBoosterRange},
	{ID: "booster_mines", Income: Grant{Resources: Resources{Ore: 1}}, PassPer: MeasureMines, PassVP: 1},
	{ID: "booster_labs", Income: Grant{Resources: Resources{Knowledge: 1}}, PassPer: MeasureResearchLabs, PassVP: 3},
	{ID: "booster_big", Income: Grant{Charge: 4}, PassPer: MeasureBigBuildings, PassVP: 4},
	{ID: "booster_gaia", Income: Grant{Resources: Resources{Credits: 4}}, PassPer: MeasureGaiaPlanets, PassVP: 1},
	{ID: "booster_trading", Income: Grant{Resources: Resources{Ore: 1}}, PassPer: MeasureTradingStations, PassVP: 2},
}

func LookupBooster(id BoosterID) (Booster, bool) {
	for _, b := range boosters {
		if b.ID == id {
			return b, true
		}
	}
	return Booster{}, false
}

func BoosterIDs() []BoosterID {
	out := make([]BoosterID, 0, len(boosters))
	for _, b := range boosters {
		out = append(out, b.ID)
	}
	return out
}

// Tech tiles

type TechID string

type TechTile struct {
	ID       TechID `json:"id"`
	Advanced bool   `json:"advanced"`
	// Track is the track a taker may advance, and for advanced tiles the
	// track that must be at level 4. Empty means any track.
	Track        Track     `json:"track,omitempty"`
	Immediate    Grant     `json:"immediate"`
	PerTypeGrant Grant     `json:"per_type_grant"`
	Income       Grant     `json:"income"`
	Passive      PassiveID `json:"passive,omitempty"`
	Special      SpecialID `json:"special,omitempty"`
	OnEvent      Event     `json:"on_event,omitempty"`
	EventVP      int       `json:"event_vp,omitempty"`
	PassPer      Measure   `json:"pass_per,omitempty"`
	PassVP       int       `json:"pass_vp,omitempty"`
}

const AdvancedTrackLevel = 4

var techTiles = []TechTile{
	{ID: "tech_ore_qic", Track: TrackTerraforming, Immediate: Grant{Resources: Resources{Ore: 1, QIC: 1}}},
	{ID: "tech_knowledge_types", Track: TrackNavigation, PerTypeGrant: Grant{Resources: Resources{Knowledge: 1}}},
	{ID: "tech_vp7", Track: TrackAI, Immediate: Grant{VP: 7}},
	{ID: "tech_income_ore_power", Track: TrackGaia, Income: Grant{Resources: Resources{Ore: 1}, Tokens: 1}},
	{ID: "tech_income_knowledge_credit", Track: TrackEconomy, Income: Grant{Resources: Resources{Knowledge: 1, Credits: 1}}},
	{ID: "tech_income_charge4", Track: TrackScience, Income: Grant{Charge: 4}},
	{ID: "tech_gaia_vp3", OnEvent: EventBuildGaiaMine, EventVP: 3},
	{ID: "tech_big_power4", Passive: PassiveBigBuildingPower4},
	{ID: "tech_action_charge4", Special: SpecialTechCharge},

	{ID: "adv_pass_fed3", Advanced: true, Track: TrackTerraforming, PassPer: MeasureFederations, PassVP: 3},
	{ID: "adv_pass_lab3", Advanced: true, Track: TrackNavigation, PassPer: MeasureResearchLabs, PassVP: 3},
	{ID: "adv_pass_types1", Advanced: true, Track: TrackAI, PassPer: MeasurePlanetTypes, PassVP: 1},
	{ID: "adv_mine_vp2", Advanced: true, Track: TrackGaia, OnEvent: EventBuildMine, EventVP: 2},
	{ID: "adv_ts_vp4", Advanced: true, Track: TrackEconomy, OnEvent: EventBuildTradingStation, EventVP: 4},
	{ID: "adv_action_ore3", Advanced: true, Track: TrackScience, Special: SpecialAdvancedOre},
}

func LookupTech(id TechID) (TechTile, bool) {
	for _, t := range techTiles {
		if t.ID == id {
			return t, true
		}
	}
	return TechTile{}, false
}

func StandardTechIDs() []TechID {
	var out []TechID
	for _, t := range techTiles {
		if !t.Advanced {
			out = append(out, t.ID)
		}
	}
	return out
}

func AdvancedTechIDs() []TechID {
	var out []TechID
	for _, t := range techTiles {
		if t.Advanced {
			out = append(out, t.ID)
		}
	}
	return out
}

// Federation rewards

type FederationRewardID string

type FederationReward struct {
	ID    FederationRewardID `json:"id"`
	Grant Grant              `json:"grant"`
	Green bool               `json:"green"`
}

const FederationRewardCopies = 3

var federationRewards = []FederationReward{
	{ID: "fed_vp12", Grant: Grant{VP: 12}},
	{ID: "fed_vp8_qic1", Grant: Grant{VP: 8, Resources: Resources{QIC: 1}}, Green: true},
	{ID: "fed_vp8_tokens2", Grant: Grant{VP: 8, Tokens: 2}, Green: true},
	{ID: "fed_vp7_ore2", Grant: Grant{VP: 7, Resources: Resources{Ore: 2}}, Green: true},
	{ID: "fed_vp7_knowledge2", Grant: Grant{VP: 7, Resources: Resources{Knowledge: 2}}, Green: true},
	{ID: "fed_vp6_credits6", Grant: Grant{VP: 6, Resources: Resources{Credits: 6}}, Green: true},
}

func LookupFederationReward(id FederationRewardID) (FederationReward, bool) {
	for _, r := range federationRewards {
		if r.ID == id {
			return r, true
		}
	}
	return FederationReward{}, false
}

func FederationRewardIDs() []FederationRewardID {
	out := make([]FederationRewardID, 0, len(federationRewards))
	for _, r := range federationRewards {
		out = append(out, r.ID)
	}
	return out
}

// Power and QIC actions

type PowerActionID string

type PowerEffect string

const (
	EffectNone     PowerEffect = ""
	EffectTechTile PowerEffect = "tech_tile"
	EffectRescore  PowerEffect = "rescore_federation"
	EffectTypesVP  PowerEffect = "planet_types_vp"
)

type PowerAction struct {
	ID        PowerActionID `json:"id"`
	Power     int           `json:"power,omitempty"`
	QIC       int           `json:"qic,omitempty"`
	Grant     Grant         `json:"grant"`
	FreeSteps int           `json:"free_steps,omitempty"`
	Effect    PowerEffect   `json:"effect,omitempty"`
}

var powerActions = []PowerAction{
	{ID: "power_knowledge3", Power: 7, Grant: Grant{Resources: Resources{Knowledge: 3}}},
	{ID: "power_terraform2", Power: 5, FreeSteps: 2},
	{ID: "power_ore2", Power: 4, Grant: Grant{Resources: Resources{Ore: 2}}},
	{ID: "power_credits7", Power: 4, Grant: Grant{Resources: Resources{Credits: 7}}},
	{ID: "power_knowledge2", Power: 4, Grant: Grant{Resources: Resources{Knowledge: 2}}},
	{ID: "power_terraform1", Power: 3, FreeSteps: 1},
	{ID: "power_tokens2", Power: 3, Grant: Grant{Tokens: 2}},
	{ID: "qic_tech", QIC: 4, Effect: EffectTechTile},
	{ID: "qic_rescore", QIC: 3, Effect: EffectRescore},
	{ID: "qic_types", QIC: 2, Grant: Grant{VP: 3}, Effect: EffectTypesVP},
}

func LookupPowerAction(id PowerActionID) (PowerAction, bool) {
	for _, a := range powerActions {
		if a.ID == id {
			return a, true
		}
	}
	return PowerAction{}, false
}

func PowerActionIDs() []PowerActionID {
	out := make([]PowerActionID, 0, len(powerActions))
	for _, a := range powerActions {
		out = append(out, a.ID)
	}
	return out
}

// Round and final missions

type MissionID string

type RoundMission struct {
	ID MissionID `json:"id"`
	On Event     `json:"on"`
	VP int       `json:"vp"`
}

const Rounds = 6

var roundMissions = []RoundMission{
	{ID: "mission_mine2", On: EventBuildMine, VP: 2},
	{ID: "mission_trading3", On: EventBuildTradingStation, VP: 3},
	{ID: "mission_trading4", On: EventBuildTradingStation, VP: 4},
	{ID: "mission_big5", On: EventBuildBigBuilding, VP: 5},
	{ID: "mission_federation5", On: EventFederation, VP: 5},
	{ID: "mission_gaia3", On: EventBuildGaiaMine, VP: 3},
	{ID: "mission_terraform2", On: EventTerraformStep, VP: 2},
	{ID: "mission_research2", On: EventResearchStep, VP: 2},
}

func LookupRoundMission(id MissionID) (RoundMission, bool) {
	for _, m := range roundMissions {
		if m.ID == id {
			return m, true
		}
	}
	return RoundMission{}, false
}

type FinalMissionID string

type FinalMission struct {
	ID      FinalMissionID `json:"id"`
	Measure Measure        `json:"measure"`
}

var FinalMissionPayout = []int{18, 12, 6}

var finalMissions = []FinalMission{
	{ID: "final_structures", Measure: MeasureStructures},
	{ID: "final_federated", Measure: MeasureFederatedStructures},
	{ID: "final_types", Measure: MeasurePlanetTypes},
	{ID: "final_gaia", Measure: MeasureGaiaPlanets},
	{ID: "final_sectors", Measure: MeasureSectors},
	{ID: "final_satellites", Measure: MeasureSatellites},
}

func LookupFinalMission(id FinalMissionID) (FinalMission, bool) {
	for _, m := range finalMissions {
		if m.ID == id {
			return m, true
		}
	}
	return FinalMission{}, false
}

// Vehicles

type VehicleID string

type Vehicle struct {
	ID              VehicleID `json:"id"`
	Hex             world.Hex `json:"hex"`
	Occupants       []string  `json:"occupants,omitempty"`
	Reward          Grant     `json:"reward"`
	FirstBonus      Grant     `json:"first_bonus"`
	NavigationBonus int       `json:"navigation_bonus,omitempty"`
}

func (v Vehicle) Clone() Vehicle {
	out := v
	if v.Occupants != nil {
		out.Occupants = append([]string(nil), v.Occupants...)
	}
	return out
}

func (v Vehicle) Entered(seat string) bool {
	for _, o := range v.Occupants {
		if o == seat {
			return true
		}
	}
	return false
}

var vehicleTemplates = []Vehicle{
	{ID: "eclipse", Reward: Grant{Resources: Resources{Knowledge: 2}}, FirstBonus: Grant{VP: 3}, NavigationBonus: 1},
	{ID: "rebellion", Reward: Grant{Resources: Resources{Credits: 3, QIC: 1}}, FirstBonus: Grant{VP: 3}},
	{ID: "twilight", Reward: Grant{Resources: Resources{Ore: 3}}, FirstBonus: Grant{VP: 3}},
	{ID: "tf_mars", Reward: Grant{Charge: 3, Tokens: 1}, FirstBonus: Grant{VP: 3}},
}

// Pools is the shared supply every seat draws from.
type Pools struct {
	Boosters          []BoosterID                `json:"boosters"`
	StandardTech      []TechID                   `json:"standard_tech"`
	AdvancedTech      []TechID                   `json:"advanced_tech"`
	PowerActionsUsed  map[PowerActionID]bool     `json:"power_actions_used"`
	FederationRewards map[FederationRewardID]int `json:"federation_rewards"`
	RoundMissions     []MissionID                `json:"round_missions"`
	FinalMissions     []FinalMissionID           `json:"final_missions"`
	TerraformingTop   FederationRewardID         `json:"terraforming_top"`
	TrackTop          map[Track]string           `json:"track_top"`
}

func (p Pools) Clone() Pools {
	out := p
	out.Boosters = cloneSlice(p.Boosters)
	out.StandardTech = cloneSlice(p.StandardTech)
	out.AdvancedTech = cloneSlice(p.AdvancedTech)
	out.RoundMissions = cloneSlice(p.RoundMissions)
	out.FinalMissions = cloneSlice(p.FinalMissions)
	out.PowerActionsUsed = cloneMap(p.PowerActionsUsed)
	out.FederationRewards = cloneMap(p.FederationRewards)
	out.TrackTop = cloneMap(p.TrackTop)
	return out
}

func (p *Pools) TakeBooster(id BoosterID) bool {
	for i, b := range p.Boosters {
		if b == id {
			p.Boosters = append(p.Boosters[:i:i], p.Boosters[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Pools) ReturnBooster(id BoosterID) {
	if id == "" {
		return
	}
	p.Boosters = append(p.Boosters, id)
	sort.Slice(p.Boosters, func(i, j int) bool { return p.Boosters[i] < p.Boosters[j] })
}

func (p Pools) HasBooster(id BoosterID) bool {
	for _, b := range p.Boosters {
		if b == id {
			return true
		}
	}
	return false
}

func (p *Pools) TakeAdvanced(id TechID) bool {
	for i, t := range p.AdvancedTech {
		if t == id {
			p.AdvancedTech = append(p.AdvancedTech[:i:i], p.AdvancedTech[i+1:]...)
			return true
		}
	}
	return false
}

func (p Pools) CurrentMission(round int) (RoundMission, bool) {
	if round < 1 || round > len(p.RoundMissions) {
		return RoundMission{}, false
	}
	return LookupRoundMission(p.RoundMissions[round-1])
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append([]T(nil), in...)
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
