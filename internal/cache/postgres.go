package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conceptual-Machines/fretboard-api/internal/models"
)

// PostgresStore persists guides in the scale_guides table
type PostgresStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore wraps a migrated gorm connection
func NewPostgresStore(db *gorm.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

func (s *PostgresStore) Name() string {
	return BackendPostgres
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*models.ScaleGuide, bool, error) {
	var record models.GuideRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load guide %s: %w", key, err)
	}
	if record.Expired(s.now()) {
		return nil, false, nil
	}

	var guide models.ScaleGuide
	if err := json.Unmarshal(record.Payload, &guide); err != nil {
		return nil, false, fmt.Errorf("decode stored guide %s: %w", key, err)
	}
	return &guide, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, guide *models.ScaleGuide) error {
	payload, err := json.Marshal(guide)
	if err != nil {
		return fmt.Errorf("encode guide %s: %w", key, err)
	}

	record := models.GuideRecord{
		Key:     key,
		Payload: datatypes.JSON(payload),
	}
	if s.ttl > 0 {
		expires := s.now().Add(s.ttl)
		record.ExpiresAt = &expires
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at", "expires_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("store guide %s: %w", key, err)
	}
	return nil
}

// Len counts stored guides, including expired rows not yet overwritten
func (s *PostgresStore) Len() int {
	var count int64
	if err := s.db.Model(&models.GuideRecord{}).Count(&count).Error; err != nil {
		return 0
	}
	return int(count)
}
