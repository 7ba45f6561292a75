package repository

import (
	"context"
	"errors"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type keyValueRepository struct {
	db *gorm.DB
}

// NewKeyValueRepository creates a new key/value repository
func NewKeyValueRepository(db *gorm.DB) domainRepo.KeyValueRepository {
	return &keyValueRepository{db: db}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value entity.StoredValue
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&value).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value.Value, true, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key, value string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entity.StoredValue{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entity.StoredValue{}).Error
}
