package cache

import (
	"context"
	"time"

	"github.com/junaidrashid-git/kataplum-api/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMiss = errors.New("cache miss")

// Entry is a cached payload together with its age.
type Entry struct {
	Payload  []byte
	StoredAt time.Time
	Fresh    bool
}

// Store keeps named payloads in the cache_entries table.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get loads key. Entries older than maxAge are still returned, with Fresh
// set to false, so callers can fall back to stale data when offline.
func (s *Store) Get(ctx context.Context, key string, maxAge time.Duration) (Entry, error) {
	var row models.CacheEntry
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, errors.Wrapf(err, "load cache entry %s", key)
	}

	return Entry{
		Payload:  row.Payload,
		StoredAt: row.StoredAt,
		Fresh:    s.now().Sub(row.StoredAt) < maxAge,
	}, nil
}

// Put stores payload under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	row := models.CacheEntry{Key: key, Payload: payload, StoredAt: s.now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "stored_at"}),
	}).Create(&row).Error
	return errors.Wrapf(err, "store cache entry %s", key)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).Delete(&models.CacheEntry{}).Error
	return errors.Wrapf(err, "delete cache entry %s", key)
}

// Purge removes every entry and reports how many were dropped.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.CacheEntry{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "purge cache")
	}
	return res.RowsAffected, nil
}
