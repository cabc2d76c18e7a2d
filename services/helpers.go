package services

import (
	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/storage"
)

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || uploader == nil || team.LogoKey == nil {
		return
	}
	if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func populatePlayerPhotoURL(player *models.Player, uploader storage.FileUploader) {
	if player == nil || uploader == nil {
		return
	}
	if player.PhotoKey != nil {
		if url := uploader.GetPublicURL(*player.PhotoKey); url != "" {
			player.PhotoURL = &url
		}
	}
	populateTeamLogoURL(player.Team, uploader)
}

// allowedImageTypes are the content types accepted for photo/logo uploads.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}
