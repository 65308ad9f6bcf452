package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

type FactionID string

const (
	FactionTerrans     FactionID = "terrans"
	FactionLantids     FactionID = "lantids"
	FactionHadschHalla FactionID = "hadsch_hallas"
	FactionIvits       FactionID = "ivits"
	FactionGeodens     FactionID = "geodens"
	FactionBalTaks     FactionID = "bal_taks"
	FactionXenos       FactionID = "xenos"
	FactionGleens      FactionID = "gleens"
	FactionTaklons     FactionID = "taklons"
	FactionAmbas       FactionID = "ambas"
	FactionFiraks      FactionID = "firaks"
	FactionBescods     FactionID = "bescods"
	FactionItars       FactionID = "itars"
	FactionNevlas      FactionID = "nevlas"
)

type Faction struct {
	ID            FactionID        `json:"id"`
	Name          string           `json:"name"`
	Home          world.PlanetType `json:"home"`
	Resources     Resources        `json:"resources"`
	Power         PowerBowls       `json:"power"`
	Research      map[Track]int    `json:"research,omitempty"`
	StartingMines int              `json:"starting_mines"`
}

var standardStart = Resources{Ore: 4, Knowledge: 3, Credits: 15, QIC: 1}

var standardPower = PowerBowls{Bowl1: 2, Bowl2: 4}

var factions = map[FactionID]Faction{
	FactionTerrans:     {ID: FactionTerrans, Name: "Terrans", Home: world.PlanetTerra, Resources: standardStart, Power: PowerBowls{Bowl1: 4, Bowl2: 4}, Research: map[Track]int{TrackGaia: 1}, StartingMines: 2},
	FactionLantids:     {ID: FactionLantids, Name: "Lantids", Home: world.PlanetTerra, Resources: Resources{Ore: 4, Knowledge: 3, Credits: 13, QIC: 1}, Power: PowerBowls{Bowl1: 4}, StartingMines: 2},
	FactionHadschHalla: {ID: FactionHadschHalla, Name: "Hadsch Hallas", Home: world.PlanetOxide, Resources: standardStart, Power: standardPower, Research: map[Track]int{TrackEconomy: 1}, StartingMines: 2},
	FactionIvits:       {ID: FactionIvits, Name: "Ivits", Home: world.PlanetOxide, Resources: Resources{Ore: 4, Knowledge: 3, Credits: 15}, Power: standardPower, StartingMines: 0},
	FactionGeodens:     {ID: FactionGeodens, Name: "Geodens", Home: world.PlanetVolcanic, Resources: standardStart, Power: standardPower, Research: map[Track]int{TrackTerraforming: 1}, StartingMines: 2},
	FactionBalTaks:     {ID: FactionBalTaks, Name: "Bal T'aks", Home: world.PlanetVolcanic, Resources: Resources{Ore: 4, Knowledge: 3, Credits: 15}, Power: standardPower, Research: map[Track]int{TrackGaia: 1}, StartingMines: 2},
	FactionXenos:       {ID: FactionXenos, Name: "Xenos", Home: world.PlanetDesert, Resources: standardStart, Power: standardPower, Research: map[Track]int{TrackAI: 1}, StartingMines: 3},
	FactionGleens:      {ID: FactionGleens, Name: "Gleens", Home: world.PlanetDesert, Resources: Resources{Ore: 4, Knowledge: 3, Credits: 15}, Power: standardPower, Research: map[Track]int{TrackNavigation: 1}, StartingMines: 2},
	FactionTaklons:     {ID: FactionTaklons, Name: "Taklons", Home: world.PlanetSwamp, Resources: standardStart, Power: PowerBowls{Bowl1: 2, Bowl2: 4}, StartingMines: 2},
	FactionAmbas:       {ID: FactionAmbas, Name: "Ambas", Home: world.PlanetSwamp, Resources: standardStart, Power: standardPower, Research: map[Track]int{TrackNavigation: 1}, StartingMines: 2},
	FactionFiraks:      {ID: FactionFiraks, Name: "Firaks", Home: world.PlanetTitanium, Resources: Resources{Ore: 3, Knowledge: 2, Credits: 15, QIC: 1}, Power: standardPower, StartingMines: 2},
	FactionBescods:     {ID: FactionBescods, Name: "Bescods", Home: world.PlanetTitanium, Resources: Resources{Ore: 4, Knowledge: 1, Credits: 15, QIC: 1}, Power: standardPower, StartingMines: 2},
	FactionItars:       {ID: FactionItars, Name: "Itars", Home: world.PlanetIce, Resources: Resources{Ore: 5, Knowledge: 3, Credits: 15, QIC: 1}, Power: PowerBowls{Bowl1: 4, Bowl2: 4}, StartingMines: 2},
	FactionNevlas:      {ID: FactionNevlas, Name: "Nevlas", Home: world.PlanetIce, Resources: standardStart, Power: standardPower, Research: map[Track]int{TrackScience: 1}, StartingMines: 2},
}

func LookupFaction(id FactionID) (Faction, bool) {
	f, ok := factions[id]
	return f, ok
}

// FactionIDs lists every faction in a stable order.
func FactionIDs() []FactionID {
	return []FactionID{
		FactionTerrans, FactionLantids,
		FactionHadschHalla, FactionIvits,
		FactionGeodens, FactionBalTaks,
		FactionXenos, FactionGleens,
		FactionTaklons, FactionAmbas,
		FactionFiraks, FactionBescods,
		FactionItars, FactionNevlas,
	}
}

// HomeType of the seat's faction, empty before a faction is chosen.
func (s *Seat) HomeType() world.PlanetType {
	f, ok := factions[s.Faction]
	if !ok {
		return ""
	}
	return f.Home
}

func (s *Seat) Is(id FactionID) bool {
	return s.Faction == id
}
