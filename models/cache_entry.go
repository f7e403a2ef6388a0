package models

import "time"

// CacheEntry holds a cached payload (e.g. the social feed) under a fixed key
type CacheEntry struct {
	Key      string `gorm:"primaryKey;column:cache_key;size:191"`
	Payload  []byte
	StoredAt time.Time `gorm:"index"`
}
