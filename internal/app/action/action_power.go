package action

import (
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type powerActionHandler struct{ BaseHandler }

func (powerActionHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(PowerAction)
	s, seat := ac.Session, ac.Seat
	pa, ok := game.LookupPowerAction(cmd.Action)
	if !ok {
		return game.Reject(game.CodeInvalidOption, "unknown power action %q", cmd.Action)
	}
	if s.Pools.PowerActionsUsed[pa.ID] {
		return game.Reject(game.CodeAlreadyUsed, "%s already used this round", pa.ID)
	}
	if !seat.Power.CanSpend(pa.Power) {
		return game.Reject(game.CodeInsufficientPower, "%s needs %d power", pa.ID, pa.Power)
	}
	if seat.Resources.QIC < pa.QIC {
		return game.Reject(game.CodeInsufficientQIC, "%s needs %d QIC", pa.ID, pa.QIC)
	}
	switch pa.Effect {
	case game.EffectTechTile:
		if s.TechChoice(seat) == nil {
			return game.Reject(game.CodeInvalidOption, "no tech tile to take")
		}
	case game.EffectRescore:
		if len(seat.Federations) == 0 {
			return game.Reject(game.CodeInvalidOption, "no federation to score again")
		}
	}
	return nil
}

func (powerActionHandler) Apply(ac *Context) error {
	cmd := ac.Command.(PowerAction)
	s, seat := ac.Session, ac.Seat
	pa, _ := game.LookupPowerAction(cmd.Action)
	seat.Power.Spend(pa.Power)
	seat.Resources.QIC -= pa.QIC
	s.Pools.PowerActionsUsed[pa.ID] = true

	grant := pa.Grant
	if pa.Effect == game.EffectTypesVP {
		grant.VP += len(s.PlanetTypes(seat.ID))
	}
	grant.ApplyTo(seat, game.CategoryOther, string(pa.ID), s.Round)
	if pa.FreeSteps > 0 {
		seat.PendingTerraformSteps += pa.FreeSteps
		seat.FollowUpBuild = true
	}
	switch pa.Effect {
	case game.EffectTechTile:
		s.Pending = s.TechChoice(seat)
	case game.EffectRescore:
		var options []game.FederationRewardID
		for _, f := range seat.Federations {
			options = append(options, f.Reward)
		}
		s.Pending = &game.ChooseReward{Seat: seat.ID, Options: options, Rescore: true}
	}
	ac.Detail = string(pa.ID)
	return nil
}

// Conversion is a free exchange between resources.
type Conversion string

const (
	ConvertPowerCredit     Conversion = "power_credit"
	ConvertPowerOre        Conversion = "power_ore"
	ConvertPowerKnowledge  Conversion = "power_knowledge"
	ConvertPowerQIC        Conversion = "power_qic"
	ConvertQICOre          Conversion = "qic_ore"
	ConvertKnowledgeCredit Conversion = "knowledge_credit"
	ConvertOreCredit       Conversion = "ore_credit"
	ConvertOreToken        Conversion = "ore_token"
	ConvertBurn            Conversion = "burn"
)

type conversionRate struct {
	Power  int
	Pay    game.Resources
	Gain   game.Resources
	Tokens int
}

var conversions = map[Conversion]conversionRate{
	ConvertPowerCredit:     {Power: 1, Gain: game.Resources{Credits: 1}},
	ConvertPowerOre:        {Power: 3, Gain: game.Resources{Ore: 1}},
	ConvertPowerKnowledge:  {Power: 4, Gain: game.Resources{Knowledge: 1}},
	ConvertPowerQIC:        {Power: 4, Gain: game.Resources{QIC: 1}},
	ConvertQICOre:          {Pay: game.Resources{QIC: 1}, Gain: game.Resources{Ore: 1}},
	ConvertKnowledgeCredit: {Pay: game.Resources{Knowledge: 1}, Gain: game.Resources{Credits: 1}},
	ConvertOreCredit:       {Pay: game.Resources{Ore: 1}, Gain: game.Resources{Credits: 1}},
	ConvertOreToken:        {Pay: game.Resources{Ore: 1}, Tokens: 1},
}

type convertHandler struct{ BaseHandler }

func (convertHandler) Precheck(ac *Context) error {
	cmd := ac.Command.(Convert)
	seat := ac.Seat
	if cmd.Count < 1 {
		return game.Reject(game.CodeInvalidOption, "count must be positive")
	}
	if cmd.Conversion == ConvertBurn {
		if seat.Power.Bowl2 < 2*cmd.Count {
			return game.Reject(game.CodeInsufficientPower, "not enough power in bowl 2 to burn")
		}
		return nil
	}
	rate, ok := conversions[cmd.Conversion]
	if !ok {
		return game.Reject(game.CodeInvalidOption, "unknown conversion %q", cmd.Conversion)
	}
	if !seat.Power.CanSpend(rate.Power * cmd.Count) {
		return game.Reject(game.CodeInsufficientPower, "not enough power in bowl 3")
	}
	if !seat.Resources.Covers(rate.Pay.Scale(cmd.Count)) {
		return game.Reject(game.CodeUnaffordable, "cannot pay for conversion")
	}
	return nil
}

func (convertHandler) Apply(ac *Context) error {
	cmd := ac.Command.(Convert)
	seat := ac.Seat
	ac.Detail = describe("%s x%d", cmd.Conversion, cmd.Count)
	if cmd.Conversion == ConvertBurn {
		seat.Power.Burn(cmd.Count)
		return nil
	}
	rate := conversions[cmd.Conversion]
	seat.Power.Spend(rate.Power * cmd.Count)
	seat.Pay(rate.Pay.Scale(cmd.Count))
	seat.GainResources(rate.Gain.Scale(cmd.Count))
	seat.Power.GainTokens(rate.Tokens * cmd.Count)
	return nil
}
