package world

type StructureKind string

const (
	StructureNone               StructureKind = ""
	StructureMine               StructureKind = "mine"
	StructureTradingStation     StructureKind = "trading_station"
	StructureResearchLab        StructureKind = "research_lab"
	StructurePlanetaryInstitute StructureKind = "planetary_institute"
	StructureAcademy            StructureKind = "academy"
)

type Tile struct {
	Hex        Hex           `json:"hex"`
	Sector     int           `json:"sector"`
	Type       PlanetType    `json:"type"`
	Owner      string        `json:"owner,omitempty"`
	Structure  StructureKind `json:"structure,omitempty"`
	Secondary  string        `json:"secondary,omitempty"`
	Gaiaformer string        `json:"gaiaformer,omitempty"`
	Station    bool          `json:"station,omitempty"`
	Satellites []string      `json:"satellites,omitempty"`
	Federated  []string      `json:"federated,omitempty"`
}

func (t Tile) Clone() Tile {
	out := t
	if t.Satellites != nil {
		out.Satellites = append([]string(nil), t.Satellites...)
	}
	if t.Federated != nil {
		out.Federated = append([]string(nil), t.Federated...)
	}
	return out
}

func CloneTiles(in []Tile) []Tile {
	if in == nil {
		return nil
	}
	out := make([]Tile, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func FindTile(tiles []Tile, h Hex) int {
	for i := range tiles {
		if tiles[i].Hex == h {
			return i
		}
	}
	return -1
}

// OccupiedBy reports whether seat has any presence on the tile.
func (t Tile) OccupiedBy(seat string) bool {
	if seat == "" {
		return false
	}
	return t.Owner == seat || t.Secondary == seat
}

func (t Tile) HasSatellite(seat string) bool {
	return containsString(t.Satellites, seat)
}

func (t Tile) FederatedBy(seat string) bool {
	return containsString(t.Federated, seat)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
