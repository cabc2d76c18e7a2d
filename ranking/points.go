package ranking

// Ratings are centered at 1.0: an average performance earns nothing, better
// performances add points, worse ones subtract. The scale turns the small
// rating deltas into readable leaderboard numbers.
const (
	ratingBaseline = 1.0
	pointScale     = 10000.0
)

// Additive rating bonuses for reaching later bracket phases. The short path
// (teams seeded straight into the semifinal) earns smaller bonuses since it
// skips the quarterfinal.
const (
	bonusQuarters = 0.10
	bonusSemis    = 0.20
	bonusFinal    = 0.30

	bonusSemisShort = 0.08
	bonusFinalShort = 0.16
)

// PhasePoints converts one phase rating into a point contribution. The phase
// weight is scaled by the share of the tournament's total rounds the phase
// represents. A nil rating or a zero round total contributes nothing.
func PhasePoints(rating *float64, weight float64, phaseRounds, totalRounds int, bonus float64) float64 {
	if rating == nil || totalRounds == 0 {
		return 0
	}
	effective := *rating + bonus
	share := float64(phaseRounds) / float64(totalRounds)
	return (effective - ratingBaseline) * pointScale * weight * share
}
