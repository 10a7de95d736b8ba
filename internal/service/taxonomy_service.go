package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizforge/qbank-backend/internal/config"
	"github.com/quizforge/qbank-backend/internal/model"
)

// SnapshotLoader loads a bank's full taxonomy snapshot from storage.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, bankID uuid.UUID) (*model.TaxonomySnapshot, error)
}

// TaxonomyService serves taxonomy snapshots with a Redis read-through
// cache. Implements guard.TaxonomyLookup.
type TaxonomyService struct {
	loader SnapshotLoader
	rdb    *redis.Client
	cfg    *config.Config
	log    zerolog.Logger
}

// NewTaxonomyService creates a TaxonomyService.
func NewTaxonomyService(loader SnapshotLoader, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *TaxonomyService {
	return &TaxonomyService{
		loader: loader,
		rdb:    rdb,
		cfg:    cfg,
		log:    log.With().Str("component", "taxonomy_service").Logger(),
	}
}

// Snapshot returns the bank's taxonomy snapshot, serving from Redis when
// warm and falling back to PostgreSQL on miss. A cache read failure is not
// fatal; the loader is the source of truth.
func (s *TaxonomyService) Snapshot(ctx context.Context, bankID uuid.UUID) (*model.TaxonomySnapshot, error) {
	key := config.CacheKey.TaxonomySnapshotKey(bankID)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var snapshot model.TaxonomySnapshot
		if err := json.Unmarshal(raw, &snapshot); err == nil {
			return &snapshot, nil
		}
		s.log.Warn().Str("bank_id", bankID.String()).Msg("Discarding malformed cached snapshot")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Snapshot cache read failed, falling back to database")
	}

	snapshot, err := s.loader.LoadSnapshot(ctx, bankID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if raw, err := json.Marshal(snapshot); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.cfg.SnapshotCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Snapshot cache write failed")
		}
	}

	return snapshot, nil
}

// Invalidate drops the cached snapshot for a bank. Called after any
// taxonomy write so the next upsert validates against fresh data.
func (s *TaxonomyService) Invalidate(ctx context.Context, bankID uuid.UUID) error {
	return s.rdb.Del(ctx, config.CacheKey.TaxonomySnapshotKey(bankID)).Err()
}
