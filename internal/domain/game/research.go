package game

type Track string

const (
	TrackTerraforming Track = "terraforming"
	TrackNavigation   Track = "navigation"
	TrackAI           Track = "ai"
	TrackGaia         Track = "gaia"
	TrackEconomy      Track = "economy"
	TrackScience      Track = "science"
)

var Tracks = []Track{
	TrackTerraforming,
	TrackNavigation,
	TrackAI,
	TrackGaia,
	TrackEconomy,
	TrackScience,
}

const (
	MaxTrackLevel = 5
	ResearchCost  = 4
)

func (t Track) Valid() bool {
	for _, tr := range Tracks {
		if tr == t {
			return true
		}
	}
	return false
}

var navigationRange = [MaxTrackLevel + 1]int{1, 1, 2, 2, 3, 4}

var terraformOrePerStep = [MaxTrackLevel + 1]int{3, 3, 2, 1, 1, 1}

var gaiaProjectCost = [MaxTrackLevel + 1]int{0, 6, 6, 4, 3, 3}

func NavigationRange(level int) int {
	return navigationRange[clamp(level, 0, MaxTrackLevel)]
}

func TerraformOrePerStep(level int) int {
	return terraformOrePerStep[clamp(level, 0, MaxTrackLevel)]
}

// GaiaProjectCost is the number of power tokens a gaia project commits.
// Zero means the seat cannot start one yet.
func GaiaProjectCost(level int) int {
	return gaiaProjectCost[clamp(level, 0, MaxTrackLevel)]
}

// levelReward is granted once when a seat reaches the level.
func levelReward(track Track, level int) Grant {
	switch track {
	case TrackTerraforming:
		if level == 1 || level == 4 {
			return Grant{Resources: Resources{Ore: 2}}
		}
	case TrackNavigation:
		if level == 1 || level == 3 {
			return Grant{Resources: Resources{QIC: 1}}
		}
	case TrackAI:
		switch level {
		case 1, 2:
			return Grant{Resources: Resources{QIC: 1}}
		case 3, 4:
			return Grant{Resources: Resources{QIC: 2}}
		case 5:
			return Grant{Resources: Resources{QIC: 4}}
		}
	case TrackGaia:
		switch level {
		case 1, 3, 4:
			return Grant{Gaiaformers: 1}
		case 2:
			return Grant{Tokens: 3}
		}
	case TrackEconomy:
		if level == 5 {
			return Grant{Resources: Resources{Ore: 3, Credits: 6}, Charge: 6}
		}
	case TrackScience:
		if level == 5 {
			return Grant{Resources: Resources{Knowledge: 9}}
		}
	}
	return Grant{}
}

// trackIncome is the round income printed under the seat's current level.
func trackIncome(track Track, level int) (Resources, int) {
	switch track {
	case TrackEconomy:
		switch level {
		case 1:
			return Resources{Credits: 2}, 1
		case 2:
			return Resources{Ore: 1, Credits: 2}, 2
		case 3:
			return Resources{Ore: 1, Credits: 3}, 3
		case 4:
			return Resources{Ore: 2, Credits: 4}, 4
		}
	case TrackScience:
		if level >= 1 && level <= 4 {
			return Resources{Knowledge: level}, 0
		}
	}
	return Resources{}, 0
}

// CanAdvance reports why seat cannot move one step up track, if it cannot.
func (s *Session) CanAdvance(seat *Seat, track Track) *Rejection {
	if !track.Valid() {
		return Reject(CodeInvalidOption, "unknown track %q", track)
	}
	level := seat.Level(track)
	if level >= MaxTrackLevel {
		return Reject(CodeLimitReached, "%s is at the top", track)
	}
	if level+1 == MaxTrackLevel {
		if seat.GreenFederations < 1 {
			return RejectUser(CodeInvalidOption, "level %d needs a green federation", MaxTrackLevel)
		}
		if owner := s.Pools.TrackTop[track]; owner != "" {
			return Reject(CodeAlreadyUsed, "%s top already taken", track)
		}
	}
	return nil
}

// AdvanceTrack moves seat one step up track and hands out the level reward.
// Callers check CanAdvance first.
func (s *Session) AdvanceTrack(seat *Seat, track Track) {
	level := seat.Level(track) + 1
	seat.Research[track] = level
	if level == 3 {
		seat.Power.Charge(3)
	}
	if level == MaxTrackLevel {
		seat.GreenFederations--
		if s.Pools.TrackTop == nil {
			s.Pools.TrackTop = map[Track]string{}
		}
		s.Pools.TrackTop[track] = seat.ID
		if track == TrackTerraforming && s.Pools.TerraformingTop != "" {
			s.GrantFederation(seat, s.Pools.TerraformingTop, nil, true)
			s.Pools.TerraformingTop = ""
		}
	}
	levelReward(track, level).ApplyTo(seat, CategoryOther, "research "+string(track), s.Round)
	s.Trigger(seat, EventResearchStep, 1)
}
