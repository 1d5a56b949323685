// services/cards.go
package services

import (
	"fmt"

	"next2play/models"

	"github.com/gosimple/slug"
)

// PlaceholderImage is an empty 150x225 SVG shown until the poster resolves.
const PlaceholderImage = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 150 225'%3E%3C/svg%3E"

const deleteConfirmPrompt = "Are you sure you want to delete this game?"

// ArtworkIndex returns a mirrored poster URL for a game, if one exists.
type ArtworkIndex interface {
	MirroredURL(id models.GameID) (string, bool)
}

// ImageOptions configures lazy-image hints on cards.
type ImageOptions struct {
	RootMargin string
	Threshold  float64
	Width      int
	Height     int
}

func DefaultImageOptions() ImageOptions {
	return ImageOptions{RootMargin: "50px 0px", Threshold: 0.1, Width: 150, Height: 225}
}

// CardBuilder turns games into card descriptions. Build is a pure function
// of the game, the edit capability and the artwork index.
type CardBuilder struct {
	Images  ImageOptions
	Artwork ArtworkIndex
}

// ImageSource is the real poster URL, preferring a mirrored copy.
func (b CardBuilder) ImageSource(g models.Game) string {
	if b.Artwork != nil {
		if u, ok := b.Artwork.MirroredURL(g.GameID); ok {
			return u
		}
	}
	return g.ImageURL
}

func (b CardBuilder) Build(g models.Game, canEdit bool) models.Card {
	card := models.Card{
		GameID:      g.GameID,
		Anchor:      CardAnchor(g),
		Name:        g.GameName,
		Classes:     []string{"game-card", g.ProgressStatus.CSSClass()},
		ReleaseYear: string(g.ReleaseYear),
		TimeToBeat:  g.TimeToBeatText(),
		Image: models.CardImage{
			Src:        PlaceholderImage,
			DataSrc:    b.ImageSource(g),
			Alt:        g.GameName,
			Class:      "game-poster",
			Width:      b.Images.Width,
			Height:     b.Images.Height,
			Loading:    "lazy",
			Decoding:   "async",
			RootMargin: b.Images.RootMargin,
			Threshold:  b.Images.Threshold,
		},
	}
	if !canEdit {
		return card
	}

	card.Status = make([]models.StatusOption, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		card.Status = append(card.Status, models.StatusOption{Value: s, Selected: s == g.ProgressStatus})
	}
	card.Events = []models.CardEvent{
		{Element: "status-select", Event: "change", Action: models.ActionUpdateStatus},
		{Element: "delete-button", Event: "click", Action: models.ActionDeleteGame, Confirm: deleteConfirmPrompt},
	}
	return card
}

// CardAnchor is a stable element id such as "game-42-hollow-knight".
func CardAnchor(g models.Game) string {
	s := slug.Make(g.GameName)
	if s == "" {
		return fmt.Sprintf("game-%d", g.GameID)
	}
	return fmt.Sprintf("game-%d-%s", g.GameID, s)
}
