package world

// SectorRadius is the hex radius of one sector board.
const SectorRadius = 2

// SectorCenters lists sector centres in placement order. Any integer
// combination of (5,-2) and (2,3) tiles radius-2 hexagons without overlap.
var SectorCenters = []Hex{
	{Q: 0, R: 0},
	{Q: 5, R: -2},
	{Q: 2, R: 3},
	{Q: -3, R: 5},
	{Q: -5, R: 2},
	{Q: -2, R: -3},
	{Q: 3, R: -5},
	{Q: 7, R: 1},
	{Q: -7, R: -1},
	{Q: 8, R: -7},
}

func SectorCount(seats int) int {
	if seats <= 2 {
		return 7
	}
	return len(SectorCenters)
}
