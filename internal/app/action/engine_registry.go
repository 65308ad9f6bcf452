package action

import (
	"encoding/json"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

// Gate names who may send a command.
type Gate int

const (
	GateAnySeat Gate = iota
	GatePlacement
	GateBonus
	GateIncome
	GateTurn
	GatePending
	GateOffer
)

type Spec struct {
	Kind    Kind
	Phases  []game.Phase
	Stage   game.Stage
	Gate    Gate
	Pending game.InteractionKind
	// Main commands use up the turn's main action.
	Main bool
	// Quiet commands write their own log entries.
	Quiet   bool
	Handler Handler
	Decode  func(json.RawMessage) (Command, error)
}

// Handler validates in Precheck and mutates in Apply. Apply may only fail
// before it has changed anything.
type Handler interface {
	Precheck(ac *Context) error
	Apply(ac *Context) error
}

type BaseHandler struct{}

func (BaseHandler) Precheck(*Context) error { return nil }
func (BaseHandler) Apply(*Context) error    { return nil }

type Context struct {
	Session *game.Session
	SeatID  string
	Seat    *game.Seat
	Command Command
	Spec    Spec

	Detail string
	Offers []game.PowerOffer
	// Then runs after bookkeeping, for turn and round transitions.
	Then func()

	Cost       game.Resources
	BuildCost  game.BuildCost
	Federation game.FederationPlan
}

var (
	setupPhases = []game.Phase{game.PhaseFactionSelect}
	mainPhase   = []game.Phase{game.PhaseMain}
)

func actionRegistry() map[Kind]Spec {
	return map[Kind]Spec{
		KindChooseFaction:   {Kind: KindChooseFaction, Phases: setupPhases, Gate: GateAnySeat, Handler: chooseFactionHandler{}, Decode: decodeAs[ChooseFaction]},
		KindConfirmFactions: {Kind: KindConfirmFactions, Phases: setupPhases, Gate: GateAnySeat, Quiet: true, Handler: confirmFactionsHandler{}, Decode: decodeAs[ConfirmFactions]},
		KindPlaceStructure:  {Kind: KindPlaceStructure, Phases: []game.Phase{game.PhaseStartingPlacement}, Gate: GatePlacement, Quiet: true, Handler: placeStructureHandler{}, Decode: decodeAs[PlaceStructure]},
		KindSelectBooster:   {Kind: KindSelectBooster, Phases: []game.Phase{game.PhaseBonusSelect}, Gate: GateBonus, Quiet: true, Handler: selectBoosterHandler{}, Decode: decodeAs[SelectBooster]},

		KindSelectIncome: {Kind: KindSelectIncome, Phases: mainPhase, Stage: game.StageIncome, Gate: GateIncome, Quiet: true, Handler: selectIncomeHandler{}, Decode: decodeAs[SelectIncome]},
		KindAutoIncome:   {Kind: KindAutoIncome, Phases: mainPhase, Stage: game.StageIncome, Gate: GateIncome, Quiet: true, Handler: autoIncomeHandler{}, Decode: decodeAs[AutoIncome]},
		KindUndoIncome:   {Kind: KindUndoIncome, Phases: mainPhase, Stage: game.StageIncome, Gate: GateIncome, Quiet: true, Handler: undoIncomeHandler{}, Decode: decodeAs[UndoIncome]},
		KindFinishIncome: {Kind: KindFinishIncome, Phases: mainPhase, Stage: game.StageIncome, Gate: GateIncome, Quiet: true, Handler: finishIncomeHandler{}, Decode: decodeAs[FinishIncome]},

		KindBuild:            {Kind: KindBuild, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: buildHandler{}, Decode: decodeAs[Build]},
		KindUpgrade:          {Kind: KindUpgrade, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: upgradeHandler{}, Decode: decodeAs[Upgrade]},
		KindResearch:         {Kind: KindResearch, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: researchHandler{}, Decode: decodeAs[Research]},
		KindPowerAction:      {Kind: KindPowerAction, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: powerActionHandler{}, Decode: decodeAs[PowerAction]},
		KindStartGaiaProject: {Kind: KindStartGaiaProject, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: gaiaProjectHandler{}, Decode: decodeAs[StartGaiaProject]},
		KindFormFederation:   {Kind: KindFormFederation, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: formFederationHandler{}, Decode: decodeAs[FormFederation]},
		KindEnterVehicle:     {Kind: KindEnterVehicle, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: enterVehicleHandler{}, Decode: decodeAs[EnterVehicle]},
		KindSpecialAction:    {Kind: KindSpecialAction, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: specialActionHandler{}, Decode: decodeAs[SpecialAction]},
		KindPass:             {Kind: KindPass, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Main: true, Handler: passHandler{}, Decode: decodeAs[Pass]},

		KindConvert:   {Kind: KindConvert, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Handler: convertHandler{}, Decode: decodeAs[Convert]},
		KindEndTurn:   {Kind: KindEndTurn, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Handler: endTurnHandler{}, Decode: decodeAs[EndTurn]},
		KindResetTurn: {Kind: KindResetTurn, Phases: mainPhase, Stage: game.StageActions, Gate: GateTurn, Quiet: true, Handler: resetTurnHandler{}, Decode: decodeAs[ResetTurn]},

		KindRespondOffer:   {Kind: KindRespondOffer, Phases: mainPhase, Gate: GateOffer, Quiet: true, Handler: respondOfferHandler{}, Decode: decodeAs[RespondOffer]},
		KindChooseReward:   {Kind: KindChooseReward, Phases: mainPhase, Gate: GatePending, Pending: game.InteractionChooseReward, Handler: chooseRewardHandler{}, Decode: decodeAs[ChooseReward]},
		KindChooseTechTile: {Kind: KindChooseTechTile, Phases: mainPhase, Gate: GatePending, Pending: game.InteractionChooseTechTile, Handler: chooseTechTileHandler{}, Decode: decodeAs[ChooseTechTile]},
		KindConfirmCover:   {Kind: KindConfirmCover, Phases: mainPhase, Gate: GatePending, Pending: game.InteractionChooseCover, Handler: confirmCoverHandler{}, Decode: decodeAs[ConfirmCover]},
	}
}

func supportedKinds() []Kind {
	return []Kind{
		KindChooseFaction, KindConfirmFactions, KindPlaceStructure, KindSelectBooster,
		KindSelectIncome, KindAutoIncome, KindUndoIncome, KindFinishIncome,
		KindBuild, KindUpgrade, KindResearch, KindPowerAction, KindStartGaiaProject,
		KindFormFederation, KindEnterVehicle, KindSpecialAction, KindPass,
		KindConvert, KindEndTurn, KindResetTurn,
		KindRespondOffer, KindChooseReward, KindChooseTechTile, KindConfirmCover,
	}
}

func IsSupportedKind(k Kind) bool {
	for _, kind := range supportedKinds() {
		if k == kind {
			return true
		}
	}
	return false
}
