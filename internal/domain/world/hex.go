package world

// Hex is an axial coordinate on the map.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func (h Hex) S() int { return -h.Q - h.R }

func (h Hex) Add(o Hex) Hex { return Hex{Q: h.Q + o.Q, R: h.R + o.R} }

var hexDirections = [6]Hex{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

func (h Hex) Neighbors() []Hex {
	out := make([]Hex, 0, len(hexDirections))
	for _, d := range hexDirections {
		out = append(out, h.Add(d))
	}
	return out
}

// Distance is the cube (Chebyshev) distance between two hexes.
func Distance(a, b Hex) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return max(dq, dr, ds)
}

// Spiral returns every hex within radius of center, center first.
func Spiral(center Hex, radius int) []Hex {
	out := []Hex{center}
	for q := -radius; q <= radius; q++ {
		for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
			if q == 0 && r == 0 {
				continue
			}
			out = append(out, center.Add(Hex{Q: q, R: r}))
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
