package game

const (
	MaxOre       = 15
	MaxKnowledge = 15
	MaxCredits   = 30
	MaxQIC       = 15
)

type Resources struct {
	Ore       int `json:"ore"`
	Knowledge int `json:"knowledge"`
	Credits   int `json:"credits"`
	QIC       int `json:"qic"`
}

func (r Resources) Add(o Resources) Resources {
	return Resources{
		Ore:       r.Ore + o.Ore,
		Knowledge: r.Knowledge + o.Knowledge,
		Credits:   r.Credits + o.Credits,
		QIC:       r.QIC + o.QIC,
	}
}

func (r Resources) Sub(o Resources) Resources {
	return Resources{
		Ore:       r.Ore - o.Ore,
		Knowledge: r.Knowledge - o.Knowledge,
		Credits:   r.Credits - o.Credits,
		QIC:       r.QIC - o.QIC,
	}
}

func (r Resources) Covers(cost Resources) bool {
	return r.Ore >= cost.Ore && r.Knowledge >= cost.Knowledge && r.Credits >= cost.Credits && r.QIC >= cost.QIC
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

// Clamp enforces the non-negative floor and the hard caps. Income beyond a
// cap is discarded.
func (r Resources) Clamp() Resources {
	return Resources{
		Ore:       clamp(r.Ore, 0, MaxOre),
		Knowledge: clamp(r.Knowledge, 0, MaxKnowledge),
		Credits:   clamp(r.Credits, 0, MaxCredits),
		QIC:       clamp(r.QIC, 0, MaxQIC),
	}
}

func (r Resources) Scale(n int) Resources {
	return Resources{Ore: r.Ore * n, Knowledge: r.Knowledge * n, Credits: r.Credits * n, QIC: r.QIC * n}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
