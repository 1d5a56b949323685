// models/game.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProgressStatus is the backlog state of a game, stored with its human-readable label.
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "Not Started"
	StatusInProgress ProgressStatus = "In Progress"
	StatusComplete   ProgressStatus = "Complete"
	StatusTabled     ProgressStatus = "Tabled"
)

// StatusFilterAll disables the status filter.
const StatusFilterAll = "All"

// AllStatuses lists the statuses in selector order.
var AllStatuses = []ProgressStatus{StatusNotStarted, StatusInProgress, StatusComplete, StatusTabled}

// Valid reports whether s is one of the four known statuses.
func (s ProgressStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CSSClass returns the card class for the status, e.g. "status-in-progress".
func (s ProgressStatus) CSSClass() string {
	return "status-" + strings.ToLower(strings.Replace(string(s), " ", "-", 1))
}

// GameID is the backend's stable identifier. Older rows stored it as a
// numeric string, so decoding accepts both forms.
type GameID int64

func (id *GameID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %s: %w", data, err)
	}
	*id = GameID(n)
	return nil
}

func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// FlexValue holds a field the backend sends either as a number or as text
// (HowLongToBeat may be 12, "12" or "Unreleased").
type FlexValue string

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FlexValue(s)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid value %s: %w", data, err)
		}
		*v = FlexValue(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return nil
}

// MarshalJSON writes numeric values back as numbers.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	if f, err := strconv.ParseFloat(string(v), 64); err == nil {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(v))
}

// Game is the client-side projection of a backlog entry. It doubles as the
// row type of the local snapshot table.
type Game struct {
	GameID         GameID         `json:"GameID" gorm:"primaryKey;autoIncrement:false"`
	GameName       string         `json:"GameName" gorm:"not null"`
	ImageURL       string         `json:"ImageURL"`
	ReleaseYear    FlexValue      `json:"ReleaseYear,omitempty"`
	HowLongToBeat  FlexValue      `json:"HowLongToBeat"`
	ProgressStatus ProgressStatus `json:"ProgressStatus" gorm:"index"`

	SyncedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

// TableName keeps snapshot rows apart from anything else in the database.
func (Game) TableName() string {
	return "snapshot_games"
}

// TimeToBeatText is the line shown on a card.
func (g Game) TimeToBeatText() string {
	return "How Long to Beat: " + string(g.HowLongToBeat)
}

// Candidate is a search result offered in the add-game popup. It only lives
// until the popup is closed.
type Candidate struct {
	ID          GameID    `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	ReleaseDate FlexValue `json:"release_date,omitempty"`
	HoursToBeat FlexValue `json:"hours_to_beat,omitempty"`
	Platform    string    `json:"platform,omitempty"`
}
