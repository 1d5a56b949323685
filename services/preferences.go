// services/preferences.go
package services

import (
	"strconv"
	"time"

	"next2play/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieHideCompleted = "hideCompleted"
	CookieHideTabled    = "hideTabled"

	// PreferenceLifetime is how long a written preference cookie lasts.
	PreferenceLifetime = 365 * 24 * time.Hour
)

// PreferenceStore persists display preferences on the viewer's side.
type PreferenceStore struct {
	now func() time.Time
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{now: time.Now}
}

// Load reads both flags; anything but "true" counts as false.
func (p *PreferenceStore) Load(c *fiber.Ctx) models.DisplayPreferences {
	return models.DisplayPreferences{
		HideCompleted: c.Cookies(CookieHideCompleted) == "true",
		HideTabled:    c.Cookies(CookieHideTabled) == "true",
	}
}

// Save writes both flags with a 365-day expiry scoped to "/".
func (p *PreferenceStore) Save(c *fiber.Ctx, prefs models.DisplayPreferences) {
	expires := p.now().Add(PreferenceLifetime)
	for name, value := range map[string]bool{
		CookieHideCompleted: prefs.HideCompleted,
		CookieHideTabled:    prefs.HideTabled,
	} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    strconv.FormatBool(value),
			Path:     "/",
			Expires:  expires,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
