package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"next2play/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func TestArtworkSourceURL(t *testing.T) {
	assert.Equal(t, "", ArtworkSourceURL(" "))
	assert.Equal(t, "https://img.test/a.jpg", ArtworkSourceURL("https://img.test/a.jpg"))
	assert.Equal(t, "https://howlongtobeat.com/games/1_a.jpg", ArtworkSourceURL("/games/1_a.jpg"))
	assert.Equal(t, "https://howlongtobeat.com/games/1_a.jpg", ArtworkSourceURL("1_a.jpg"))
}

func TestArtworkMirrorAll(t *testing.T) {
	var poster bytes.Buffer
	require.NoError(t, png.Encode(&poster, image.NewRGBA(image.Rect(0, 0, 400, 600))))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(poster.Bytes())
	}))
	defer ts.Close()

	store := &memoryStore{}
	m := NewArtworkMirror(ts.Client(), store, nil)

	games := []models.Game{
		{GameID: 1, GameName: "Hades", ImageURL: ts.URL + "/hades.png"},
		{GameID: 2, GameName: "Gone", ImageURL: ts.URL + "/missing.png"},
		{GameID: 3, GameName: "Blank"},
	}
	report := m.MirrorAll(context.Background(), games, false)
	assert.Equal(t, MirrorReport{Processed: 1, Failed: 2, Total: 3}, report)

	u, ok := m.MirroredURL(1)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.test/game_images/game_1.jpg", u)
	assert.Contains(t, store.objects, "game_images/game_1.jpg")

	again := m.MirrorAll(context.Background(), games[:1], false)
	assert.Equal(t, 1, again.Skipped)

	forced := m.MirrorAll(context.Background(), games[:1], true)
	assert.Equal(t, 1, forced.Processed)
}
