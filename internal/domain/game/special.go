package game

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/world"

// Specials lists the once per round actions seat can still use.
func (s *Session) Specials(seat *Seat) []SpecialID {
	var all []SpecialID
	if b, ok := LookupBooster(seat.Booster); ok && b.Special != "" {
		all = append(all, b.Special)
	}
	for _, t := range seat.ActiveTech() {
		if t.Special != "" {
			all = append(all, t.Special)
		}
	}
	if s.StructureCount(seat.ID, world.StructureAcademy) >= 2 {
		all = append(all, SpecialAcademyQIC)
	}
	if seat.Is(FactionIvits) && s.StructureCount(seat.ID, world.StructurePlanetaryInstitute) > 0 {
		all = append(all, SpecialIvitsStation)
	}
	var out []SpecialID
	for _, id := range all {
		if !seat.SpecialUsed(id) {
			out = append(out, id)
		}
	}
	return out
}
