package models

// NoTeamName is the placeholder team name for players without a team.
const NoTeamName = "No Team"

// RankingEntry is one row of the global leaderboard.
type RankingEntry struct {
	PlayerID    int     `json:"player_id"`
	Nickname    string  `json:"nickname"`
	TeamName    string  `json:"team_name"`
	TotalPoints int     `json:"total_points"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}
