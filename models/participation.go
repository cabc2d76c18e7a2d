package models

// Participation links a team to a tournament. Round counts record how many
// maps the team played in each phase and drive the proportional weighting
// inside the ranking engine. StartsInSemis is authoritative: the engine does
// not re-check it against the tournament's bracket type.
type Participation struct {
	ID           int  `json:"id" db:"id"`
	TournamentID int  `json:"tournament_id" db:"tournament_id"`
	TeamID       int  `json:"team_id" db:"team_id"`
	StartsInSemis bool `json:"starts_in_semis" db:"starts_in_semis"`

	RoundsGroup    int `json:"rounds_group" db:"rounds_group"`
	RoundsQuarters int `json:"rounds_quarters" db:"rounds_quarters"`
	RoundsSemis    int `json:"rounds_semis" db:"rounds_semis"`
	RoundsFinal    int `json:"rounds_final" db:"rounds_final"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	Team       *Team       `json:"team,omitempty" db:"-"`
}

// TotalRounds sums the per-phase round counts.
func (p Participation) TotalRounds() int {
	return p.RoundsGroup + p.RoundsQuarters + p.RoundsSemis + p.RoundsFinal
}
