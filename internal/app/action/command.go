package action

import (
	"encoding/json"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

type Kind string

const (
	KindChooseFaction    Kind = "choose_faction"
	KindConfirmFactions  Kind = "confirm_factions"
	KindPlaceStructure   Kind = "place_structure"
	KindSelectBooster    Kind = "select_booster"
	KindSelectIncome     Kind = "select_income"
	KindAutoIncome       Kind = "auto_income"
	KindUndoIncome       Kind = "undo_income"
	KindFinishIncome     Kind = "finish_income"
	KindBuild            Kind = "build"
	KindUpgrade          Kind = "upgrade"
	KindResearch         Kind = "research"
	KindPowerAction      Kind = "power_action"
	KindStartGaiaProject Kind = "start_gaia_project"
	KindFormFederation   Kind = "form_federation"
	KindEnterVehicle     Kind = "enter_vehicle"
	KindSpecialAction    Kind = "special_action"
	KindPass             Kind = "pass"
	KindConvert          Kind = "convert"
	KindEndTurn          Kind = "end_turn"
	KindResetTurn        Kind = "reset_turn"
	KindRespondOffer     Kind = "respond_offer"
	KindChooseReward     Kind = "choose_reward"
	KindChooseTechTile   Kind = "choose_tech_tile"
	KindConfirmCover     Kind = "confirm_cover"
)

// Command is one seat input. The set is closed: every kind has exactly one
// struct below.
type Command interface {
	Kind() Kind
}

type ChooseFaction struct {
	Faction       game.FactionID `json:"faction"`
	TurnOrderPref int            `json:"turn_order_pref,omitempty"`
}

type ConfirmFactions struct{}

type PlaceStructure struct {
	Hex world.Hex `json:"hex"`
}

type SelectBooster struct {
	Booster game.BoosterID `json:"booster"`
}

type SelectIncome struct {
	Index int `json:"index"`
}

type AutoIncome struct{}

type UndoIncome struct{}

type FinishIncome struct{}

type Build struct {
	Hex world.Hex `json:"hex"`
}

type Upgrade struct {
	Hex world.Hex           `json:"hex"`
	To  world.StructureKind `json:"to"`
}

type Research struct {
	Track game.Track `json:"track"`
}

type PowerAction struct {
	Action game.PowerActionID `json:"action"`
}

type StartGaiaProject struct {
	Hex world.Hex `json:"hex"`
}

type FormFederation struct {
	Buildings  []world.Hex `json:"buildings"`
	Satellites []world.Hex `json:"satellites,omitempty"`
}

type EnterVehicle struct {
	Vehicle game.VehicleID `json:"vehicle"`
}

type SpecialAction struct {
	Action game.SpecialID `json:"action"`
	Hex    *world.Hex     `json:"hex,omitempty"`
}

type Pass struct {
	Booster game.BoosterID `json:"booster,omitempty"`
}

type Convert struct {
	Conversion Conversion `json:"conversion"`
	Count      int        `json:"count"`
}

type EndTurn struct{}

type ResetTurn struct{}

type RespondOffer struct {
	Accept     bool `json:"accept"`
	TokenFirst bool `json:"token_first,omitempty"`
}

type ChooseReward struct {
	Reward game.FederationRewardID `json:"reward"`
}

type ChooseTechTile struct {
	Tile  game.TechID `json:"tile"`
	Track game.Track  `json:"track,omitempty"`
}

type ConfirmCover struct {
	Tile game.TechID `json:"tile"`
}

func (ChooseFaction) Kind() Kind    { return KindChooseFaction }
func (ConfirmFactions) Kind() Kind  { return KindConfirmFactions }
func (PlaceStructure) Kind() Kind   { return KindPlaceStructure }
func (SelectBooster) Kind() Kind    { return KindSelectBooster }
func (SelectIncome) Kind() Kind     { return KindSelectIncome }
func (AutoIncome) Kind() Kind       { return KindAutoIncome }
func (UndoIncome) Kind() Kind       { return KindUndoIncome }
func (FinishIncome) Kind() Kind     { return KindFinishIncome }
func (Build) Kind() Kind            { return KindBuild }
func (Upgrade) Kind() Kind          { return KindUpgrade }
func (Research) Kind() Kind         { return KindResearch }
func (PowerAction) Kind() Kind      { return KindPowerAction }
func (StartGaiaProject) Kind() Kind { return KindStartGaiaProject }
func (FormFederation) Kind() Kind   { return KindFormFederation }
func (EnterVehicle) Kind() Kind     { return KindEnterVehicle }
func (SpecialAction) Kind() Kind    { return KindSpecialAction }
func (Pass) Kind() Kind             { return KindPass }
func (Convert) Kind() Kind          { return KindConvert }
func (EndTurn) Kind() Kind          { return KindEndTurn }
func (ResetTurn) Kind() Kind        { return KindResetTurn }
func (RespondOffer) Kind() Kind     { return KindRespondOffer }
func (ChooseReward) Kind() Kind     { return KindChooseReward }
func (ChooseTechTile) Kind() Kind   { return KindChooseTechTile }
func (ConfirmCover) Kind() Kind     { return KindConfirmCover }

// DecodeCommand turns a wire kind and JSON payload into a typed command.
func DecodeCommand(kind string, payload json.RawMessage) (Command, error) {
	spec, ok := actionRegistry()[Kind(strings.TrimSpace(kind))]
	if !ok {
		return nil, ErrUnknownCommand
	}
	cmd, err := spec.Decode(payload)
	if err != nil {
		return nil, ErrInvalidCommandParams
	}
	return cmd, nil
}

func decodeAs[T Command](payload json.RawMessage) (Command, error) {
	var cmd T
	if len(payload) == 0 || string(payload) == "null" {
		return cmd, nil
	}
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}
