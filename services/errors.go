package services

import "errors"

// Business errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrPlayerNicknameRequired = errors.New("player nickname is required")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrInvalidBracketType     = errors.New("invalid bracket type")
	ErrInvalidTournamentWeight = errors.New("tournament weight must be positive")
	ErrPhaseWeightSum         = errors.New("phase weights must sum to 1.0")
	ErrInvalidRoundCount      = errors.New("round counts must not be negative")

	// Conflicts
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrPlayerNicknameConflict = errors.New("player nickname is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Entity-specific not-found errors
	ErrTeamNotFound          = errors.New("team not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrParticipationNotFound = errors.New("participation not found")

	// Uploads
	ErrUploadsDisabled     = errors.New("file uploads are not configured")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
