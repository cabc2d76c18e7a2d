package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstasiak/cs2-tracker/models"
)

func newPlayerServiceForTest() (PlayerService, *fakePlayerRepo, *fakeTeamRepo) {
	playerRepo := newFakePlayerRepo()
	teamRepo := newFakeTeamRepo()
	return NewPlayerService(playerRepo, teamRepo, nil), playerRepo, teamRepo
}

func seedPlayers(t *testing.T, repo *fakePlayerRepo, nicknames ...string) {
	t.Helper()
	for _, nickname := range nicknames {
		require.NoError(t, repo.Create(context.Background(), &models.Player{Nickname: nickname}))
	}
}

func TestSearchPlayersCaseInsensitive(t *testing.T) {
	svc, playerRepo, _ := newPlayerServiceForTest()
	seedPlayers(t, playerRepo, "ZywOo", "dev1ce", "NiKo")

	got, err := svc.SearchPlayers(context.Background(), "zywoo")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ZywOo", got[0].Nickname)
}

func TestSearchPlayersRegexPattern(t *testing.T) {
	svc, playerRepo, _ := newPlayerServiceForTest()
	seedPlayers(t, playerRepo, "s1mple", "m0NESY", "b1t")

	got, err := svc.SearchPlayers(context.Background(), "^[sb]1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1mple", got[0].Nickname)
	assert.Equal(t, "b1t", got[1].Nickname)
}

func TestSearchPlayersInvalidPatternReturnsEmpty(t *testing.T) {
	svc, playerRepo, _ := newPlayerServiceForTest()
	seedPlayers(t, playerRepo, "ZywOo")

	got, err := svc.SearchPlayers(context.Background(), "[unclosed")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreatePlayerRequiresNickname(t *testing.T) {
	svc, _, _ := newPlayerServiceForTest()

	_, err := svc.CreatePlayer(context.Background(), CreatePlayerInput{Nickname: "  "})
	assert.ErrorIs(t, err, ErrPlayerNicknameRequired)
}

func TestCreatePlayerUnknownTeam(t *testing.T) {
	svc, _, _ := newPlayerServiceForTest()

	_, err := svc.CreatePlayer(context.Background(), CreatePlayerInput{Nickname: "NiKo", TeamID: iptr(42)})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestUpdatePlayerZeroTeamIDDetaches(t *testing.T) {
	svc, playerRepo, teamRepo := newPlayerServiceForTest()

	team := models.Team{Name: "G2"}
	require.NoError(t, teamRepo.Create(context.Background(), &team))
	player := models.Player{Nickname: "huNter-", TeamID: &team.ID}
	require.NoError(t, playerRepo.Create(context.Background(), &player))

	updated, err := svc.UpdatePlayer(context.Background(), player.ID, UpdatePlayerInput{TeamID: iptr(0)})
	require.NoError(t, err)
	assert.Nil(t, updated.TeamID)
}

func TestUploadPhotoDisabledWithoutStorage(t *testing.T) {
	svc, playerRepo, _ := newPlayerServiceForTest()
	seedPlayers(t, playerRepo, "ropz")

	_, err := svc.UploadPhoto(context.Background(), 1, "image/png", nil)
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}
