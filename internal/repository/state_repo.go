package repository

import (
	"context"
	"errors"
	"time"

	"coinnecta/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStateNotFound is returned when no blob is stored under a key.
var ErrStateNotFound = errors.New("state not found")

// StateRepository stores serialized workspaces under versioned keys.
type StateRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type stateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var blob model.StateBlob
	if err := GetDB(ctx, r.db).First(&blob, "state_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return []byte(blob.Value), nil
}

func (r *stateRepository) Put(ctx context.Context, key string, value []byte) error {
	blob := model.StateBlob{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}
