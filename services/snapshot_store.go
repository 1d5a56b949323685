// services/snapshot_store.go
package services

import (
	"context"

	"next2play/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotStore keeps the last authoritative collection so the view can
// start while the backend is down.
type SnapshotStore interface {
	Save(ctx context.Context, games []models.Game) error
	Load(ctx context.Context) ([]models.Game, error)
}

// NopSnapshotStore is used when no database is configured.
type NopSnapshotStore struct{}

func (NopSnapshotStore) Save(context.Context, []models.Game) error { return nil }

func (NopSnapshotStore) Load(context.Context) ([]models.Game, error) { return nil, nil }

// GormSnapshotStore mirrors the collection into the snapshot_games table.
type GormSnapshotStore struct {
	DB *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{DB: db}
}

// Save upserts every game and deletes rows that are no longer present.
func (s *GormSnapshotStore) Save(ctx context.Context, games []models.Game) error {
	rows := make([]models.Game, len(games))
	copy(rows, games)
	ids := make([]models.GameID, len(rows))
	for i, g := range rows {
		ids[i] = g.GameID
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Game{}).Error
		}
		if err := tx.Where("game_id NOT IN ?", ids).Delete(&models.Game{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "game_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"game_name", "image_url", "release_year", "how_long_to_beat", "progress_status", "synced_at",
			}),
		}).CreateInBatches(&rows, 200).Error
	})
}

func (s *GormSnapshotStore) Load(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.DB.WithContext(ctx).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// Migrate creates the snapshot and artwork tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Game{},
		&models.ArtworkRecord{},
	)
}
