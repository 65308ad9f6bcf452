package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

var StructureLimits = map[world.StructureKind]int{
	world.StructureMine:               8,
	world.StructureTradingStation:     4,
	world.StructureResearchLab:        3,
	world.StructurePlanetaryInstitute: 1,
	world.StructureAcademy:            2,
}

var structureCosts = map[world.StructureKind]Resources{
	world.StructureMine:               {Ore: 1, Credits: 2},
	world.StructureTradingStation:     {Ore: 2, Credits: 6},
	world.StructureResearchLab:        {Ore: 3, Credits: 5},
	world.StructurePlanetaryInstitute: {Ore: 4, Credits: 6},
	world.StructureAcademy:            {Ore: 6, Credits: 6},
}

// upgrades maps each structure to the structures it may become.
var upgrades = map[world.StructureKind][]world.StructureKind{
	world.StructureMine:           {world.StructureTradingStation},
	world.StructureTradingStation: {world.StructureResearchLab, world.StructurePlanetaryInstitute},
	world.StructureResearchLab:    {world.StructureAcademy},
}

// TradingStationNeighborCredits is the trading station credit cost when
// another seat has a structure within NeighborRadius.
const (
	TradingStationNeighborCredits = 3
	NeighborRadius                = 2
)

func StructureCost(kind world.StructureKind) Resources {
	return structureCosts[kind]
}

func CanUpgrade(from, to world.StructureKind) bool {
	for _, k := range upgrades[from] {
		if k == to {
			return true
		}
	}
	return false
}

func UpgradeTargets(from world.StructureKind) []world.StructureKind {
	return upgrades[from]
}

func IsBigBuilding(kind world.StructureKind) bool {
	return kind == world.StructurePlanetaryInstitute || kind == world.StructureAcademy
}

// PowerValue of a structure for power offers and federations.
func (s *Session) PowerValue(seat *Seat, kind world.StructureKind) int {
	switch kind {
	case world.StructureMine:
		return 1
	case world.StructureTradingStation, world.StructureResearchLab:
		return 2
	case world.StructurePlanetaryInstitute, world.StructureAcademy:
		if seat != nil && seat.HasPassive(PassiveBigBuildingPower4) {
			return 4
		}
		return 3
	}
	return 0
}

var (
	mineOreIncome            = []int{1, 1, 0, 1, 1, 1, 1, 1}
	tradingStationCredits    = []int{3, 4, 4, 5}
	researchLabKnowledge     = 1
	firstAcademyKnowledge    = 2
	planetaryInstituteCharge = 4
	planetaryInstituteTokens = 1
)
