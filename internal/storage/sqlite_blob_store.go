package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blobRecord struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (blobRecord) TableName() string { return "blobs" }

// Migrate creates the blob table. Called once at startup by the sqlite
// database constructor.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&blobRecord{})
}

// SQLiteBlobStore keeps each collection blob as one row in a sqlite table.
type SQLiteBlobStore struct {
	db *gorm.DB
}

func NewSQLiteBlobStore(db *gorm.DB) *SQLiteBlobStore {
	return &SQLiteBlobStore{db: db}
}

func (s *SQLiteBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record blobRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.Value, nil
}

func (s *SQLiteBlobStore) Set(ctx context.Context, key string, value []byte) error {
	record := blobRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *SQLiteBlobStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&blobRecord{}, "key = ?", key).Error
}

func (s *SQLiteBlobStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&blobRecord{}).Error
}
