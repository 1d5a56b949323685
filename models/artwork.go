// models/artwork.go
package models

import "time"

// ArtworkRecord remembers where a game's poster was mirrored to.
type ArtworkRecord struct {
	GameID     GameID    `json:"game_id" gorm:"primaryKey;autoIncrement:false"`
	SourceURL  string    `json:"source_url"`
	StoredURL  string    `json:"stored_url" gorm:"not null"`
	ObjectKey  string    `json:"object_key"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Bytes      int       `json:"bytes"`
	MirroredAt time.Time `json:"mirrored_at" gorm:"autoUpdateTime"`
}
