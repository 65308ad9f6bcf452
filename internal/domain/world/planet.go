package world

type PlanetType string

const (
	PlanetTerra    PlanetType = "terra"
	PlanetOxide    PlanetType = "oxide"
	PlanetVolcanic PlanetType = "volcanic"
	PlanetDesert   PlanetType = "desert"
	PlanetSwamp    PlanetType = "swamp"
	PlanetTitanium PlanetType = "titanium"
	PlanetIce      PlanetType = "ice"
	PlanetGaia     PlanetType = "gaia"
	PlanetTransdim PlanetType = "transdim"
	PlanetSpace    PlanetType = "space"
)

// TerraformWheel is the fixed cycle of habitable planet types. Gaia is the
// eighth habitable type but is never reached by terraforming: it costs a
// flat QIC instead, so it stays off the wheel. Transdim becomes gaia only
// through a gaia project.
var TerraformWheel = []PlanetType{
	PlanetTerra,
	PlanetOxide,
	PlanetVolcanic,
	PlanetDesert,
	PlanetSwamp,
	PlanetTitanium,
	PlanetIce,
}

func (p PlanetType) OnWheel() bool {
	return wheelIndex(p) >= 0
}

func (p PlanetType) IsPlanet() bool {
	return p != PlanetSpace && p != ""
}

// TerraformSteps returns the shorter way around the wheel between two types.
// ok is false when either type is not on the wheel.
func TerraformSteps(from, to PlanetType) (int, bool) {
	i, j := wheelIndex(from), wheelIndex(to)
	if i < 0 || j < 0 {
		return 0, false
	}
	n := len(TerraformWheel)
	cw := (j - i + n) % n
	ccw := (i - j + n) % n
	return min(cw, ccw), true
}

func wheelIndex(p PlanetType) int {
	for i, t := range TerraformWheel {
		if t == p {
			return i
		}
	}
	return -1
}
