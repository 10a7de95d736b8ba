package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionBaselineKey returns the cache key for an author's session-origin
// baseline (client IP + user agent recorded at login).
func (r *CacheKeyStruct) SessionBaselineKey(userID int) string {
	return fmt.Sprintf("session:%d:baseline", userID)
}

// TaxonomySnapshotKey returns the cache key for a bank's taxonomy snapshot.
func (r *CacheKeyStruct) TaxonomySnapshotKey(bankID uuid.UUID) string {
	return fmt.Sprintf("bank:%s:taxonomy_snapshot", bankID)
}

// AuditMonitorChannel returns the Redis PubSub channel for the live
// security-audit monitor stream.
func (r *CacheKeyStruct) AuditMonitorChannel() string {
	return "audit:monitor"
}

var CacheKey = NewCacheKeyStruct()
