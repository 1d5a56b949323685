// services/artwork.go
package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"next2play/models"
	"next2play/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	artworkOrigin     = "https://howlongtobeat.com"
	artworkMaxWidth   = 200
	artworkMaxHeight  = 300
	artworkQuality    = 90
	artworkMaxBytes   = 10 << 20
	artworkObjectPath = "game_images"
)

// ObjectStore persists mirrored artwork and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ArtworkMirror downloads game posters, shrinks them and stores them in an
// ObjectStore so cards do not hotlink the metadata provider.
type ArtworkMirror struct {
	HTTPClient *http.Client
	Store      ObjectStore
	DB         *gorm.DB

	mu   sync.RWMutex
	urls map[models.GameID]string
}

// MirrorReport summarises a MirrorAll run.
type MirrorReport struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

func NewArtworkMirror(client *http.Client, store ObjectStore, db *gorm.DB) *ArtworkMirror {
	if client == nil {
		client = utils.HTTPClient
	}
	return &ArtworkMirror{HTTPClient: client, Store: store, DB: db, urls: make(map[models.GameID]string)}
}

// LoadRecords fills the in-memory index from the artwork_records table.
func (m *ArtworkMirror) LoadRecords(ctx context.Context) error {
	if m.DB == nil {
		return nil
	}
	var records []models.ArtworkRecord
	if err := m.DB.WithContext(ctx).Find(&records).Error; err != nil {
		return fmt.Errorf("failed to load artwork records: %w", err)
	}
	m.mu.Lock()
	for _, r := range records {
		m.urls[r.GameID] = r.StoredURL
	}
	m.mu.Unlock()
	log.Printf("[ARTWORK] 📥 Loaded %d mirrored artwork record(s)", len(records))
	return nil
}

func (m *ArtworkMirror) MirroredURL(id models.GameID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.urls[id]
	return u, ok
}

// ArtworkSourceURL turns a stored image reference into a downloadable URL.
// Bare file names are the provider's poster names.
func ArtworkSourceURL(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return artworkOrigin + raw
	default:
		return artworkOrigin + "/games/" + raw
	}
}

// ArtworkKey is the object key of a game's mirrored poster.
func ArtworkKey(id models.GameID) string {
	return fmt.Sprintf("%s/game_%d.jpg", artworkObjectPath, id)
}

// Mirror fetches, shrinks and stores one poster.
func (m *ArtworkMirror) Mirror(ctx context.Context, g models.Game) (models.ArtworkRecord, error) {
	src := ArtworkSourceURL(g.ImageURL)
	if src == "" {
		return models.ArtworkRecord{}, fmt.Errorf("no image URL for %s", g.GameName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return models.ArtworkRecord{}, fmt.Errorf("failed to create request to %s: %w", src, err)
	}
	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return models.ArtworkRecord{}, fmt.Errorf("failed to download %s: %w", src, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return models.ArtworkRecord{}, fmt.Errorf("failed to download image for %s: HTTP %d", g.GameName, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, artworkMaxBytes))
	if err != nil {
		return models.ArtworkRecord{}, fmt.Errorf("failed to read %s: %w", src, err)
	}

	data, size, err := utils.FitJPEG(raw, artworkMaxWidth, artworkMaxHeight, artworkQuality)
	if err != nil {
		return models.ArtworkRecord{}, fmt.Errorf("failed to process image for %s: %w", g.GameName, err)
	}

	key := ArtworkKey(g.GameID)
	stored, err := m.Store.Put(ctx, key, data, "image/jpeg")
	if err != nil {
		return models.ArtworkRecord{}, err
	}

	rec := models.ArtworkRecord{
		GameID:    g.GameID,
		SourceURL: src,
		StoredURL: stored,
		ObjectKey: key,
		Width:     size.X,
		Height:    size.Y,
		Bytes:     len(data),
	}
	if m.DB != nil {
		if err := m.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
			log.Printf("[ARTWORK] ⚠️ Failed to record artwork for game %d: %v", g.GameID, err)
		}
	}

	m.mu.Lock()
	m.urls[g.GameID] = stored
	m.mu.Unlock()
	return rec, nil
}

// MirrorAll mirrors every game. Games already mirrored are skipped unless
// force is set. Failures are logged and counted; the run continues.
func (m *ArtworkMirror) MirrorAll(ctx context.Context, games []models.Game, force bool) MirrorReport {
	report := MirrorReport{Total: len(games)}
	log.Printf("[ARTWORK] 🔁 Found %d games to process", len(games))

	for _, g := range games {
		if ctx.Err() != nil {
			break
		}
		if _, done := m.MirroredURL(g.GameID); done && !force {
			report.Skipped++
			continue
		}
		if _, err := m.Mirror(ctx, g); err != nil {
			log.Printf("[ARTWORK] ❌ Error processing %s: %v", g.GameName, err)
			report.Failed++
			continue
		}
		report.Processed++
		log.Printf("[ARTWORK] ✅ Successfully processed %s", g.GameName)
	}

	log.Printf("[ARTWORK] ✅ Mirror complete: %d processed, %d skipped, %d failed of %d",
		report.Processed, report.Skipped, report.Failed, report.Total)
	return report
}
