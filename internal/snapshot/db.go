package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/shopcart-backend/pkg/db"
	"github.com/angelmondragon/shopcart-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore persists snapshots in the snapshots table (sqlite or postgres).
type DBStore struct {
	client *db.Client
	now    func() time.Time
}

func NewDBStore(client *db.Client) *DBStore {
	return &DBStore{client: client, now: time.Now}
}

func (s *DBStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row models.Snapshot
	err := s.client.DB().WithContext(ctx).
		Where("snapshot_key = ?", key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Payload, true, nil
}

func (s *DBStore) Set(ctx context.Context, key, value string) error {
	row := models.Snapshot{Key: key, Payload: value, UpdatedAt: s.now().UTC()}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *DBStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
