package game

// PowerBowls is the three stage token ladder. Tokens only move 1→2→3 by
// charging and 3→1 by spending; GaiaArea holds tokens committed to gaia
// projects until the next gaia phase.
type PowerBowls struct {
	Bowl1    int `json:"bowl1"`
	Bowl2    int `json:"bowl2"`
	Bowl3    int `json:"bowl3"`
	GaiaArea int `json:"gaia_area"`
}

func (p PowerBowls) Total() int {
	return p.Bowl1 + p.Bowl2 + p.Bowl3 + p.GaiaArea
}

// Chargeable is the most power a charge can move right now.
func (p PowerBowls) Chargeable() int {
	return 2*p.Bowl1 + p.Bowl2
}

// Charge moves tokens from bowl 1 to bowl 2 first, then from bowl 2 to
// bowl 3. It returns the amount actually charged.
func (p *PowerBowls) Charge(n int) int {
	if n <= 0 {
		return 0
	}
	charged := 0
	first := min(n, p.Bowl1)
	p.Bowl1 -= first
	p.Bowl2 += first
	charged += first
	n -= first
	second := min(n, p.Bowl2)
	p.Bowl2 -= second
	p.Bowl3 += second
	charged += second
	return charged
}

func (p *PowerBowls) GainTokens(n int) {
	if n > 0 {
		p.Bowl1 += n
	}
}

func (p PowerBowls) CanSpend(n int) bool {
	return n >= 0 && p.Bowl3 >= n
}

// Spend returns n tokens from bowl 3 to bowl 1.
func (p *PowerBowls) Spend(n int) bool {
	if !p.CanSpend(n) {
		return false
	}
	p.Bowl3 -= n
	p.Bowl1 += n
	return true
}

// Burn discards n tokens from bowl 2 to move n more into bowl 3.
func (p *PowerBowls) Burn(n int) bool {
	if n <= 0 || p.Bowl2 < 2*n {
		return false
	}
	p.Bowl2 -= 2 * n
	p.Bowl3 += n
	return true
}

func (p PowerBowls) Tokens() int {
	return p.Bowl1 + p.Bowl2 + p.Bowl3
}

// RemoveTokens permanently discards n tokens, lowest bowl first.
func (p *PowerBowls) RemoveTokens(n int) bool {
	if n < 0 || p.Tokens() < n {
		return false
	}
	p.Bowl1, n = takeUpTo(p.Bowl1, n)
	p.Bowl2, n = takeUpTo(p.Bowl2, n)
	p.Bowl3, _ = takeUpTo(p.Bowl3, n)
	return true
}

// MoveToGaia commits n tokens to the gaia area, lowest bowl first.
func (p *PowerBowls) MoveToGaia(n int) bool {
	if !p.RemoveTokens(n) {
		return false
	}
	p.GaiaArea += n
	return true
}

// ReturnFromGaia empties the gaia area into bowl 1, or bowl 2 when toBowl2.
func (p *PowerBowls) ReturnFromGaia(toBowl2 bool) int {
	n := p.GaiaArea
	p.GaiaArea = 0
	if toBowl2 {
		p.Bowl2 += n
	} else {
		p.Bowl1 += n
	}
	return n
}

func takeUpTo(have, want int) (left, remaining int) {
	take := min(have, want)
	return have - take, want - take
}
