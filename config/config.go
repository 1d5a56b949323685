// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the view service reads from the environment.
type Config struct {
	Port           string
	BackendURL     string
	BackendToken   string
	EditToken      string
	ViewOnly       bool
	AllowedOrigins string

	BatchSize         int
	ResyncDelay       time.Duration
	HighlightDuration time.Duration
	RevealPause       time.Duration
	NoticeDuration    time.Duration
	ImageRootMargin   string
	ImageThreshold    float64
	CollationLocale   string

	DatabaseURL            string
	// CollectionSyncInterval enables the periodic re-sync; 0 leaves it off.
	CollectionSyncInterval time.Duration
	RecentPollInterval     time.Duration
	ArtworkInterval        time.Duration
	SessionIdleTimeout     time.Duration

	ArtworkDir string
	R2         R2Config
}

// R2Config is optional; an empty bucket means artwork is mirrored to ArtworkDir.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

// Enabled reports whether enough R2 settings are present to upload artwork.
func (r R2Config) Enabled() bool {
	return r.Bucket != "" && r.AccountID != "" && r.AccessKeyID != ""
}

// Defaults returns the configuration used when no variables are set.
func Defaults() Config {
	return Config{
		Port:                   "5015",
		AllowedOrigins:         "http://localhost:5015",
		BatchSize:              20,
		ResyncDelay:            1 * time.Second,
		HighlightDuration:      2 * time.Second,
		RevealPause:            10 * time.Millisecond,
		NoticeDuration:         3 * time.Second,
		ImageRootMargin:        "50px 0px",
		ImageThreshold:         0.1,
		CollationLocale:        "en",
		CollectionSyncInterval: 0,
		RecentPollInterval:     1 * time.Minute,
		ArtworkInterval:        6 * time.Hour,
		SessionIdleTimeout:     12 * time.Hour,
		ArtworkDir:             "static/game_images",
	}
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := Defaults()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("BACKEND_URL environment variable not set")
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.BackendURL, "BACKEND_URL")
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	setString(&c.BackendToken, "BACKEND_TOKEN")
	setString(&c.EditToken, "VIEW_EDIT_TOKEN")
	setString(&c.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&c.ImageRootMargin, "IMAGE_ROOT_MARGIN")
	setString(&c.CollationLocale, "COLLATION_LOCALE")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.ArtworkDir, "ARTWORK_DIR")

	setString(&c.R2.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	setString(&c.R2.AccessKeyID, "R2_ACCESS_KEY_ID")
	setString(&c.R2.AccessKeySecret, "R2_ACCESS_KEY_SECRET")
	setString(&c.R2.Bucket, "R2_BUCKET_NAME")
	setString(&c.R2.CDNBaseURL, "CDN_BASE_URL")

	if v := os.Getenv("VIEW_ONLY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid VIEW_ONLY %q: %w", v, err)
		}
		c.ViewOnly = b
	}

	if v := os.Getenv("BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid BATCH_SIZE %q", v)
		}
		c.BatchSize = n
	}

	if v := os.Getenv("IMAGE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid IMAGE_THRESHOLD %q", v)
		}
		c.ImageThreshold = f
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"RESYNC_DELAY", &c.ResyncDelay},
		{"HIGHLIGHT_DURATION", &c.HighlightDuration},
		{"REVEAL_PAUSE", &c.RevealPause},
		{"NOTICE_DURATION", &c.NoticeDuration},
		{"COLLECTION_SYNC_INTERVAL", &c.CollectionSyncInterval},
		{"RECENT_POLL_INTERVAL", &c.RecentPollInterval},
		{"ARTWORK_INTERVAL", &c.ArtworkInterval},
		{"SESSION_IDLE_TIMEOUT", &c.SessionIdleTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid %s %q", d.key, v)
		}
		*d.dst = parsed
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS and trims each entry.
func (c Config) Origins() string {
	parts := strings.Split(c.AllowedOrigins, ",")
	for i, origin := range parts {
		parts[i] = strings.TrimSpace(origin)
	}
	return strings.Join(parts, ",")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
