package handlers

import (
	"net/http"

	"github.com/dstasiak/cs2-tracker/services"
)

type PerformanceHandler struct {
	performanceService services.PerformanceService
}

func NewPerformanceHandler(ps services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: ps}
}

// SetPerformance upserts a player's phase ratings for a tournament.
func (h *PerformanceHandler) SetPerformance(w http.ResponseWriter, r *http.Request) {
	var input services.SetPerformanceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	performance, err := h.performanceService.SetPerformance(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"performance": performance}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
