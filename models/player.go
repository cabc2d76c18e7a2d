package models

type Player struct {
	ID       int    `json:"id" db:"id"`
	Nickname string `json:"nickname" db:"nickname"`
	TeamID   *int   `json:"team_id,omitempty" db:"team_id"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`

	// Optional related entities (resolved by repositories, not mapped directly).
	Team         *Team         `json:"team,omitempty" db:"-"`
	Performances []Performance `json:"performances,omitempty" db:"-"`
}
