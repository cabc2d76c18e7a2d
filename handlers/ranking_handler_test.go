package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstasiak/cs2-tracker/models"
)

type stubRankingService struct {
	entries []models.RankingEntry
	err     error
}

func (s *stubRankingService) GetRanking(context.Context) ([]models.RankingEntry, error) {
	return s.entries, s.err
}

func TestGetRankingReturnsJSONArray(t *testing.T) {
	handler := NewRankingHandler(&stubRankingService{
		entries: []models.RankingEntry{
			{PlayerID: 1, Nickname: "dev1ce", TeamName: "Astralis", TotalPoints: 850},
			{PlayerID: 2, Nickname: "ZywOo", TeamName: "Vitality", TotalPoints: 207},
			{PlayerID: 3, Nickname: "lurker", TeamName: models.NoTeamName, TotalPoints: 0},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ranking/", nil)
	rec := httptest.NewRecorder()
	handler.GetRanking(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []models.RankingEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "dev1ce", got[0].Nickname)
	assert.Equal(t, 850, got[0].TotalPoints)
	assert.Equal(t, "No Team", got[2].TeamName)
}

func TestGetRankingEmptyArrayNotNull(t *testing.T) {
	handler := NewRankingHandler(&stubRankingService{entries: []models.RankingEntry{}})

	req := httptest.NewRequest(http.MethodGet, "/api/ranking/", nil)
	rec := httptest.NewRecorder()
	handler.GetRanking(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetRankingServiceError(t *testing.T) {
	handler := NewRankingHandler(&stubRankingService{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodGet, "/api/ranking/", nil)
	rec := httptest.NewRecorder()
	handler.GetRanking(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
