// services/backlog_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"next2play/models"
)

// AddOutcome distinguishes a fresh add from a duplicate; neither is an error.
type AddOutcome int

const (
	AddAdded AddOutcome = iota
	AddDuplicate
)

// BacklogClient talks to the backlog backend. Every call is a single round
// trip; nothing is retried.
type BacklogClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewBacklogClient(baseURL, token string) *BacklogClient {
	return &BacklogClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// searchResult is the HowLongToBeat-shaped row returned by /search_games.
type searchResult struct {
	GameID       models.GameID    `json:"game_id"`
	GameName     string           `json:"game_name"`
	GameImageURL string           `json:"game_image_url"`
	ReleaseWorld models.FlexValue `json:"release_world"`
	MainStory    models.FlexValue `json:"main_story"`
	Platform     string           `json:"profile_platform"`
}

type confirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Search asks the backend for candidates matching name.
func (c *BacklogClient) Search(ctx context.Context, name string) ([]models.Candidate, error) {
	var results []searchResult
	if _, err := c.do(ctx, "search", http.MethodPost, "/search_games", map[string]string{"GameName": name}, &results); err != nil {
		return nil, err
	}
	out := make([]models.Candidate, 0, len(results))
	for _, r := range results {
		out = append(out, models.Candidate{
			ID:          r.GameID,
			Name:        r.GameName,
			ImageURL:    r.GameImageURL,
			ReleaseDate: r.ReleaseWorld,
			HoursToBeat: r.MainStory,
			Platform:    r.Platform,
		})
	}
	return out, nil
}

// Add submits a chosen candidate. A 409 answer is AddDuplicate.
func (c *BacklogClient) Add(ctx context.Context, cand models.Candidate) (AddOutcome, error) {
	body := map[string]any{
		"GameID":        cand.ID,
		"GameName":      cand.Name,
		"ReleaseYear":   cand.ReleaseDate,
		"HowLongToBeat": cand.HoursToBeat,
	}
	var conf confirmation
	_, err := c.do(ctx, "add", http.MethodPost, "/add_game", body, &conf)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusConflict {
		return AddDuplicate, nil
	}
	if err != nil {
		return AddAdded, err
	}
	if !conf.Success {
		return AddAdded, fmt.Errorf("add %d: %w", cand.ID, ErrUnconfirmed)
	}
	return AddAdded, nil
}

// UpdateStatus sets a game's progress status.
func (c *BacklogClient) UpdateStatus(ctx context.Context, id models.GameID, status models.ProgressStatus) error {
	return c.confirmed(ctx, "update status", http.MethodPost, "/update_status/"+url.PathEscape(id.String()), map[string]string{"status": string(status)})
}

// Delete removes a game.
func (c *BacklogClient) Delete(ctx context.Context, id models.GameID) error {
	return c.confirmed(ctx, "delete", http.MethodDelete, "/delete_game/"+url.PathEscape(id.String()), nil)
}

// RefreshAll triggers the backend's metadata refresh for every game.
func (c *BacklogClient) RefreshAll(ctx context.Context) error {
	return c.confirmed(ctx, "update games", http.MethodPost, "/update_games", nil)
}

// Recent returns the recently touched games for the side panel.
func (c *BacklogClient) Recent(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if _, err := c.do(ctx, "recent games", http.MethodGet, "/recent_games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// FetchCollection loads the authoritative game list.
func (c *BacklogClient) FetchCollection(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if _, err := c.do(ctx, "collection", http.MethodGet, "/?ajax=true", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *BacklogClient) confirmed(ctx context.Context, op, method, path string, body any) error {
	var conf confirmation
	if _, err := c.do(ctx, op, method, path, body, &conf); err != nil {
		return err
	}
	if !conf.Success {
		return fmt.Errorf("%s: %w", op, ErrUnconfirmed)
	}
	return nil
}

func (c *BacklogClient) do(ctx context.Context, op, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create request to %s: %w", op, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("[BACKEND] ❌ %s %s failed: %v", method, endpoint, err)
		return 0, &TransportError{Op: op, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode != http.StatusConflict {
			log.Printf("[BACKEND] ❌ %s %s returned %d: %s", method, endpoint, resp.StatusCode, string(msg))
		}
		return resp.StatusCode, &StatusError{Op: op, Code: resp.StatusCode, Body: string(msg)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Printf("[BACKEND] ❌ Failed to decode %s response: %v", op, err)
			return resp.StatusCode, fmt.Errorf("%s: failed to decode response: %w", op, err)
		}
	}
	return resp.StatusCode, nil
}
