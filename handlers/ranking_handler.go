package handlers

import (
	"net/http"

	"github.com/dstasiak/cs2-tracker/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rs services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rs}
}

// GetRanking returns the global leaderboard as a plain JSON array, sorted by
// total points descending.
func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rankingService.GetRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
