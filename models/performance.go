package models

// Performance is one player's ratings for one tournament, unique on the
// (player, tournament) pair. A nil rating means the player did not play
// that phase; the engine treats it as a zero contribution.
type Performance struct {
	ID           int `json:"id" db:"id"`
	PlayerID     int `json:"player_id" db:"player_id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`

	RatingGroup    *float64 `json:"rating_group,omitempty" db:"rating_group"`
	RatingQuarters *float64 `json:"rating_quarters,omitempty" db:"rating_quarters"`
	RatingSemis    *float64 `json:"rating_semis,omitempty" db:"rating_semis"`
	RatingFinal    *float64 `json:"rating_final,omitempty" db:"rating_final"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
