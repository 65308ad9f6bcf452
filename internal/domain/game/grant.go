package game

// Grant is a bundle of gains handed to a seat in one step.
type Grant struct {
	Resources   Resources `json:"resources"`
	Charge      int       `json:"charge,omitempty"`
	Tokens      int       `json:"tokens,omitempty"`
	VP          int       `json:"vp,omitempty"`
	Gaiaformers int       `json:"gaiaformers,omitempty"`
}

func (g Grant) IsZero() bool {
	return g == Grant{}
}

func (g Grant) Plus(o Grant) Grant {
	return Grant{
		Resources:   g.Resources.Add(o.Resources),
		Charge:      g.Charge + o.Charge,
		Tokens:      g.Tokens + o.Tokens,
		VP:          g.VP + o.VP,
		Gaiaformers: g.Gaiaformers + o.Gaiaformers,
	}
}

// ApplyTo hands the grant to the seat. Tokens are gained before charging.
func (g Grant) ApplyTo(seat *Seat, category ScoreCategory, reason string, round int) {
	seat.GainResources(g.Resources)
	seat.Power.GainTokens(g.Tokens)
	seat.Power.Charge(g.Charge)
	seat.Gaiaformers += g.Gaiaformers
	if g.VP != 0 {
		seat.AddScore(category, g.VP, round, reason)
	}
}
