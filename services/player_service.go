package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/repositories"
	"github.com/dstasiak/cs2-tracker/storage"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	GetAllPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	SearchPlayers(ctx context.Context, query string) ([]models.Player, error)
	UploadPhoto(ctx context.Context, id int, contentType string, file io.Reader) (*models.Player, error)
}

type CreatePlayerInput struct {
	Nickname string `json:"nickname"`
	TeamID   *int   `json:"team_id"`
}

// UpdatePlayerInput carries optional fields; a TeamID of 0 detaches the
// player from their team.
type UpdatePlayerInput struct {
	Nickname *string `json:"nickname"`
	TeamID   *int    `json:"team_id"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		uploader:   uploader,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		return nil, ErrPlayerNicknameRequired
	}

	if input.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to verify team %d: %w", *input.TeamID, err)
		}
	}

	player := &models.Player{Nickname: nickname, TeamID: input.TeamID}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNicknameConflict):
			return nil, ErrPlayerNicknameConflict
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
	}
	return s.GetPlayerByID(ctx, player.ID)
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) GetAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.ListWithTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		populatePlayerPhotoURL(&players[i], s.uploader)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	if input.Nickname != nil {
		nickname := strings.TrimSpace(*input.Nickname)
		if nickname == "" {
			return nil, ErrPlayerNicknameRequired
		}
		player.Nickname = nickname
	}

	if input.TeamID != nil {
		if *input.TeamID == 0 {
			player.TeamID = nil
		} else {
			if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
				if errors.Is(err, repositories.ErrTeamNotFound) {
					return nil, ErrTeamNotFound
				}
				return nil, fmt.Errorf("failed to verify team %d: %w", *input.TeamID, err)
			}
			player.TeamID = input.TeamID
		}
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNicknameConflict):
			return nil, ErrPlayerNicknameConflict
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to update player %d: %w", id, err)
		}
	}
	return s.GetPlayerByID(ctx, id)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}

	if s.uploader != nil && player.PhotoKey != nil {
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}
	return nil
}

// SearchPlayers filters nicknames by a case-insensitive regular expression.
// An invalid pattern yields an empty result, not an error.
func (s *playerService) SearchPlayers(ctx context.Context, query string) ([]models.Player, error) {
	pattern, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return []models.Player{}, nil
	}

	players, err := s.GetAllPlayers(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Player, 0)
	for _, player := range players {
		if pattern.MatchString(player.Nickname) {
			matched = append(matched, player)
		}
	}
	return matched, nil
}

func (s *playerService) UploadPhoto(ctx context.Context, id int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("players/%d/photo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload player %d photo: %w", id, err)
	}

	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to store player %d photo key: %w", id, err)
	}

	if player.PhotoKey != nil && *player.PhotoKey != key {
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}

	player.PhotoKey = &key
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}
