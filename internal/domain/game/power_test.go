package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerBowls_ChargeFillsBowlTwoFirst(t *testing.T) {
	p := PowerBowls{Bowl1: 2, Bowl2: 4}
	assert.Equal(t, 3, p.Charge(3))
	assert.Equal(t, PowerBowls{Bowl1: 0, Bowl2: 5, Bowl3: 1}, p)

	assert.Equal(t, 5, p.Charge(10))
	assert.Equal(t, PowerBowls{Bowl3: 6}, p)
}

func TestPowerBowls_ConservesTokens(t *testing.T) {
	p := PowerBowls{Bowl1: 3, Bowl2: 2, Bowl3: 1}
	total := p.Tokens()

	p.Charge(4)
	assert.Equal(t, total, p.Tokens())
	assert.True(t, p.Spend(2))
	assert.Equal(t, total, p.Tokens())
	assert.False(t, p.Spend(10))
	assert.Equal(t, total, p.Tokens())

	p.GainTokens(2)
	assert.Equal(t, total+2, p.Tokens())
}

func TestPowerBowls_Burn(t *testing.T) {
	p := PowerBowls{Bowl2: 3}
	assert.True(t, p.Burn(1))
	assert.Equal(t, PowerBowls{Bowl2: 1, Bowl3: 1}, p)
	assert.False(t, p.Burn(1))
}

func TestPowerBowls_GaiaAreaRoundTrip(t *testing.T) {
	p := PowerBowls{Bowl1: 1, Bowl2: 4, Bowl3: 2}
	assert.True(t, p.MoveToGaia(3))
	assert.Equal(t, PowerBowls{Bowl2: 2, Bowl3: 2, GaiaArea: 3}, p)
	assert.Equal(t, 3, p.ReturnFromGaia(true))
	assert.Equal(t, PowerBowls{Bowl2: 5, Bowl3: 2}, p)
}

func TestResources_ClampDiscardsOverflow(t *testing.T) {
	seat := NewSeat("a", "A", SeatHuman)
	seat.Resources = Resources{Ore: 14, Knowledge: 15, Credits: 29, QIC: 1}
	seat.GainResources(Resources{Ore: 5, Knowledge: 1, Credits: 7, QIC: 20})
	assert.Equal(t, Resources{Ore: MaxOre, Knowledge: MaxKnowledge, Credits: MaxCredits, QIC: MaxQIC}, seat.Resources)

	seat.GainResources(Resources{Ore: -1})
	assert.Equal(t, MaxOre-1, seat.Resources.Ore)
}
