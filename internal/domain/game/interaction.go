package game

import (
	"encoding/json"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"
)

type InteractionKind string

const (
	InteractionChooseReward   InteractionKind = "choose_reward"
	InteractionChooseTechTile InteractionKind = "choose_tech_tile"
	InteractionChooseCover    InteractionKind = "choose_cover"
)

// Interaction is the single blocking follow-up a session can wait on.
// The set of variants is closed.
type Interaction interface {
	Kind() InteractionKind
	Target() string
	cloneInteraction() Interaction
}

// ChooseReward asks for a federation reward. Rescore grants an owned reward
// again instead of drawing from the pool.
type ChooseReward struct {
	Seat    string               `json:"seat"`
	Options []FederationRewardID `json:"options"`
	Hexes   []world.Hex          `json:"hexes,omitempty"`
	Rescore bool                 `json:"rescore,omitempty"`
}

func (c *ChooseReward) Kind() InteractionKind { return InteractionChooseReward }
func (c *ChooseReward) Target() string        { return c.Seat }
func (c *ChooseReward) cloneInteraction() Interaction {
	out := *c
	out.Options = cloneSlice(c.Options)
	out.Hexes = cloneSlice(c.Hexes)
	return &out
}

type ChooseTechTile struct {
	Seat     string   `json:"seat"`
	Standard []TechID `json:"standard"`
	Advanced []TechID `json:"advanced,omitempty"`
}

func (c *ChooseTechTile) Kind() InteractionKind { return InteractionChooseTechTile }
func (c *ChooseTechTile) Target() string        { return c.Seat }
func (c *ChooseTechTile) cloneInteraction() Interaction {
	out := *c
	out.Standard = cloneSlice(c.Standard)
	out.Advanced = cloneSlice(c.Advanced)
	return &out
}

// ChooseCover waits for the standard tile an advanced tile goes on top of.
type ChooseCover struct {
	Seat     string   `json:"seat"`
	Advanced TechID   `json:"advanced"`
	Track    Track    `json:"track,omitempty"`
	Options  []TechID `json:"options"`
}

func (c *ChooseCover) Kind() InteractionKind { return InteractionChooseCover }
func (c *ChooseCover) Target() string        { return c.Seat }
func (c *ChooseCover) cloneInteraction() Interaction {
	out := *c
	out.Options = cloneSlice(c.Options)
	return &out
}

func cloneInteraction(i Interaction) Interaction {
	if i == nil {
		return nil
	}
	return i.cloneInteraction()
}

type interactionEnvelope struct {
	Kind   InteractionKind `json:"kind"`
	Target string          `json:"target"`
	Data   Interaction     `json:"data"`
}

func marshalInteraction(i Interaction) json.RawMessage {
	if i == nil {
		return nil
	}
	raw, err := json.Marshal(interactionEnvelope{Kind: i.Kind(), Target: i.Target(), Data: i})
	if err != nil {
		return nil
	}
	return raw
}

// PowerOffer lets To charge Amount power for VPCost victory points because
// From built next to it.
type PowerOffer struct {
	ID     int       `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Amount int       `json:"amount"`
	VPCost int       `json:"vp_cost"`
	Hex    world.Hex `json:"hex"`
	Round  int       `json:"round"`
	// TokenOption allows gaining a token before or after charging.
	TokenOption bool `json:"token_option,omitempty"`
}

// IncomeItem is one power income entry whose order can matter.
type IncomeItem struct {
	Source string `json:"source"`
	Charge int    `json:"charge,omitempty"`
	Tokens int    `json:"tokens,omitempty"`
}

// IncomeChoice holds power income a seat applies one item at a time.
type IncomeChoice struct {
	Seat    string       `json:"seat"`
	Items   []IncomeItem `json:"items"`
	Applied []int        `json:"applied"`
	Start   PowerBowls   `json:"start"`
}

func (c IncomeChoice) Clone() IncomeChoice {
	out := c
	out.Items = cloneSlice(c.Items)
	out.Applied = cloneSlice(c.Applied)
	return out
}

func (c IncomeChoice) IsApplied(idx int) bool {
	for _, a := range c.Applied {
		if a == idx {
			return true
		}
	}
	return false
}

func (c IncomeChoice) Remaining() []int {
	var out []int
	for i := range c.Items {
		if !c.IsApplied(i) {
			out = append(out, i)
		}
	}
	return out
}
