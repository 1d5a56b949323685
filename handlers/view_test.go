package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"next2play/middleware"
	"next2play/models"
	"next2play/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type stubBackend struct{ games []models.Game }

func (s stubBackend) FetchCollection(context.Context) ([]models.Game, error) { return s.games, nil }
func (s stubBackend) Recent(context.Context) ([]models.Game, error)          { return nil, nil }
func (s stubBackend) Search(context.Context, string) ([]models.Candidate, error) {
	return nil, nil
}
func (s stubBackend) Add(context.Context, models.Candidate) (services.AddOutcome, error) {
	return services.AddAdded, nil
}
func (s stubBackend) UpdateStatus(context.Context, models.GameID, models.ProgressStatus) error {
	return nil
}
func (s stubBackend) Delete(context.Context, models.GameID) error { return nil }
func (s stubBackend) RefreshAll(context.Context) error            { return nil }

type stubResync struct{}

func (stubResync) Now(context.Context) (services.Snapshot, error) { return services.Snapshot{}, nil }
func (stubResync) Schedule(time.Duration)                         {}

func newTestApp(t *testing.T, auth ViewAuth) *fiber.App {
	t.Helper()
	games := []models.Game{
		{GameID: 1, GameName: "Hades", ProgressStatus: models.StatusInProgress},
		{GameID: 2, GameName: "Celeste", ProgressStatus: models.StatusNotStarted},
	}
	coll := services.NewCollection(language.English)
	coll.Replace(games)
	view := services.NewViewService(coll, services.NewSessionStore(20, time.Second), stubBackend{games: games},
		stubResync{}, services.CardBuilder{Images: services.DefaultImageOptions()}, services.ViewOptions{})

	app := fiber.New()
	SetupViewRoutes(app, view, auth)
	return app
}

func TestViewRoutesOpenSession(t *testing.T) {
	app := newTestApp(t, ViewAuth{SessionIdle: time.Hour})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/view/state", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Session string `json:"session"`
		CanEdit bool   `json:"can_edit"`
		Batch   struct {
			Cards []models.Card `json:"cards"`
		} `json:"batch"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Session)
	assert.True(t, body.CanEdit)
	require.Len(t, body.Batch.Cards, 2)
	assert.Equal(t, "Hades", body.Batch.Cards[0].Name)

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			found = c.Value == body.Session
		}
	}
	assert.True(t, found)
}

func TestViewRoutesEnforceEditToken(t *testing.T) {
	app := newTestApp(t, ViewAuth{EditToken: "s3cret", SessionIdle: time.Hour})

	req := httptest.NewRequest(http.MethodPost, "/view/games/1/status", strings.NewReader(`{"status":"Complete"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/view/games/1/status", strings.NewReader(`{"status":"Complete"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.EditTokenHeader, "s3cret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
