package game

// TechChoice lists the tiles seat could take right now.
func (s *Session) TechChoice(seat *Seat) *ChooseTechTile {
	choice := &ChooseTechTile{Seat: seat.ID}
	for _, id := range s.Pools.StandardTech {
		if !seat.HasTech(id) {
			choice.Standard = append(choice.Standard, id)
		}
	}
	if seat.GreenFederations > 0 && len(coverable(seat)) > 0 {
		for _, id := range s.Pools.AdvancedTech {
			t, ok := LookupTech(id)
			if ok && seat.Level(t.Track) >= AdvancedTrackLevel {
				choice.Advanced = append(choice.Advanced, id)
			}
		}
	}
	if len(choice.Standard) == 0 && len(choice.Advanced) == 0 {
		return nil
	}
	return choice
}

func coverable(seat *Seat) []TechID {
	var out []TechID
	for _, owned := range seat.TechTiles {
		if t, ok := LookupTech(owned.ID); ok && !t.Advanced && !owned.Covered {
			out = append(out, owned.ID)
		}
	}
	return out
}

// CoverOptions lists the standard tiles an advanced tile may cover.
func CoverOptions(seat *Seat) []TechID {
	return coverable(seat)
}

// StepTrack resolves the optional research step that comes with a tile.
// An empty want means no step.
func (s *Session) StepTrack(seat *Seat, tile TechTile, want Track) (Track, *Rejection) {
	if want == "" {
		return "", nil
	}
	if tile.Track != "" && want != tile.Track {
		return "", Reject(CodeInvalidOption, "%s only advances %s", tile.ID, tile.Track)
	}
	if rej := s.CanAdvance(seat, want); rej != nil {
		return "", rej
	}
	return want, nil
}

// GainTech gives seat a tile with its immediate rewards.
func (s *Session) GainTech(seat *Seat, tile TechTile) {
	seat.TechTiles = append(seat.TechTiles, OwnedTech{ID: tile.ID})
	tile.Immediate.ApplyTo(seat, CategoryTechTile, string(tile.ID), s.Round)
	if !tile.PerTypeGrant.IsZero() {
		n := len(s.PlanetTypes(seat.ID))
		for i := 0; i < n; i++ {
			tile.PerTypeGrant.ApplyTo(seat, CategoryTechTile, string(tile.ID), s.Round)
		}
	}
}

// CoverTech puts an advanced tile over a standard one and spends a green
// federation.
func (s *Session) CoverTech(seat *Seat, advanced TechTile, covered TechID) bool {
	idx := -1
	for i, owned := range seat.TechTiles {
		if owned.ID == covered && !owned.Covered {
			idx = i
		}
	}
	if idx < 0 || seat.GreenFederations < 1 || !s.Pools.TakeAdvanced(advanced.ID) {
		return false
	}
	seat.TechTiles[idx].Covered = true
	seat.GreenFederations--
	s.GainTech(seat, advanced)
	return true
}
