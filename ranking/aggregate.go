package ranking

import "github.com/dstasiak/cs2-tracker/models"

// TournamentPoints folds one performance record into a single score for that
// tournament.
//
// Round counts come from the team's participation; without one every phase
// has zero rounds and the tournament scores zero. The participation's
// StartsInSemis flag alone selects the phase path — the tournament's bracket
// type is descriptive metadata, never a second source of truth. The summed
// contributions are floored at zero before the tournament's own weight is
// applied, so a bad final rating can zero out a tournament but never turn it
// into a debt.
func TournamentPoints(perf models.Performance, tour models.Tournament, part *models.Participation) float64 {
	var roundsGroup, roundsQuarters, roundsSemis, roundsFinal int
	startsInSemis := false
	if part != nil {
		roundsGroup = part.RoundsGroup
		roundsQuarters = part.RoundsQuarters
		roundsSemis = part.RoundsSemis
		roundsFinal = part.RoundsFinal
		startsInSemis = part.StartsInSemis
	}
	totalRounds := roundsGroup + roundsQuarters + roundsSemis + roundsFinal

	sum := PhasePoints(perf.RatingGroup, tour.WeightGroup, roundsGroup, totalRounds, 0)

	if startsInSemis {
		semisWeight := shortPathWeight(tour.WeightGroup, tour.WeightSemisOverride)
		finalWeight := shortPathWeight(tour.WeightGroup, tour.WeightFinalOverride)
		sum += PhasePoints(perf.RatingSemis, semisWeight, roundsSemis, totalRounds, bonusSemisShort)
		sum += PhasePoints(perf.RatingFinal, finalWeight, roundsFinal, totalRounds, bonusFinalShort)
	} else {
		sum += PhasePoints(perf.RatingQuarters, tour.WeightQuarters, roundsQuarters, totalRounds, bonusQuarters)
		sum += PhasePoints(perf.RatingSemis, tour.WeightSemis, roundsSemis, totalRounds, bonusSemis)
		sum += PhasePoints(perf.RatingFinal, tour.WeightFinal, roundsFinal, totalRounds, bonusFinal)
	}

	if sum < 0 {
		sum = 0
	}
	return sum * tour.Weight
}

// shortPathWeight resolves the semifinal/final weight for teams that skipped
// the quarterfinal: the configured override when present, otherwise half of
// whatever the group phase left over.
func shortPathWeight(groupWeight float64, override *float64) float64 {
	if override != nil {
		return *override
	}
	return (1.0 - groupWeight) / 2
}
