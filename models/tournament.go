package models

// BracketType represents tournament bracket variants stored as an ENUM in the DB.
type BracketType string

const (
	// BracketStandard8 is the full bracket: group, quarterfinal, semifinal, final.
	BracketStandard8 BracketType = "standard-8"
	// BracketShort6 seeds the two best teams directly into the semifinal.
	BracketShort6 BracketType = "short-6"
)

// Tournament holds the weight configuration consumed by the ranking engine.
// The four phase weights must sum to 1.0; the override weights apply only to
// teams that skip the quarterfinal in a short-6 bracket.
type Tournament struct {
	ID          int         `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	BracketType BracketType `json:"bracket_type" db:"bracket_type"`
	Weight      float64     `json:"weight" db:"weight"`

	WeightGroup    float64 `json:"weight_group" db:"weight_group"`
	WeightQuarters float64 `json:"weight_quarters" db:"weight_quarters"`
	WeightSemis    float64 `json:"weight_semis" db:"weight_semis"`
	WeightFinal    float64 `json:"weight_final" db:"weight_final"`

	WeightSemisOverride *float64 `json:"weight_semis_override,omitempty" db:"weight_semis_override"`
	WeightFinalOverride *float64 `json:"weight_final_override,omitempty" db:"weight_final_override"`

	Participations []Participation `json:"participations,omitempty" db:"-"`
}
