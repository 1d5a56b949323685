// models/view.go
package models

import "time"

// DisplayPreferences are the two persisted "hide" toggles.
type DisplayPreferences struct {
	HideCompleted bool `json:"hide_completed"`
	HideTabled    bool `json:"hide_tabled"`
}

// CardAction names an entry in the view service's event-dispatch table.
type CardAction string

const (
	ActionUpdateStatus CardAction = "update_status"
	ActionDeleteGame   CardAction = "delete_game"
	ActionHighlight    CardAction = "highlight"
)

// CardEvent binds a card element's event to a dispatchable action.
type CardEvent struct {
	Element string     `json:"element"`
	Event   string     `json:"event"`
	Action  CardAction `json:"action"`
	Confirm string     `json:"confirm,omitempty"`
}

// CardImage describes a lazily loaded poster. Src starts as a placeholder
// and DataSrc holds the real source until the image is resolved.
type CardImage struct {
	Src        string  `json:"src"`
	DataSrc    string  `json:"data_src,omitempty"`
	Alt        string  `json:"alt"`
	Class      string  `json:"class"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Loading    string  `json:"loading"`
	Decoding   string  `json:"decoding"`
	RootMargin string  `json:"root_margin"`
	Threshold  float64 `json:"threshold"`
}

type StatusOption struct {
	Value    ProgressStatus `json:"value"`
	Selected bool           `json:"selected"`
}

// Card is the renderable description of one game.
type Card struct {
	GameID      GameID         `json:"id"`
	Anchor      string         `json:"anchor"`
	Name        string         `json:"name"`
	Classes     []string       `json:"classes"`
	ReleaseYear string         `json:"release_year,omitempty"`
	TimeToBeat  string         `json:"time_to_beat"`
	Image       CardImage      `json:"image"`
	Status      []StatusOption `json:"status_options,omitempty"`
	Events      []CardEvent    `json:"events,omitempty"`
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

// Notification is a transient on-screen message.
type Notification struct {
	Seq       uint64      `json:"seq"`
	Message   string      `json:"message"`
	Level     NoticeLevel `json:"level"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// UIState tracks which overlays a viewer has open.
type UIState struct {
	MobileMenu     bool `json:"mobile_menu"`
	OptionsPopup   bool `json:"options_popup"`
	RecentPanel    bool `json:"recent_panel"`
	CandidatePopup bool `json:"candidate_popup"`
}
