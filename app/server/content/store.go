// Package content is the durable key/value table behind every editable
// section of the site.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"shinkwang-site/app/server/constants"
	"shinkwang-site/app/server/models"
	"strings"
)

var ErrMissingKey = errors.New("missing section key")

var errStaleFill = errors.New("content changed since read")

type Store struct {
	l   *zap.Logger
	db  *gorm.DB
	rdb *redis.Client // optional read-through cache of the whole map
}

func NewStore(l *zap.Logger, db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{l: l, db: db, rdb: rdb}
}

// GetAll returns every entry as key -> value. An empty or not yet created
// table yields an empty map.
func (s *Store) GetAll(ctx context.Context) (map[string]string, error) {
	// check cache
	if cached, ok := s.cached(ctx); ok {
		return cached, nil
	}
	// read before the database so a write landing in between blocks the fill
	gen, genOK := s.generation(ctx)

	var entries []models.ContentEntry
	err := s.db.WithContext(ctx).Find(&entries).Error
	if err != nil && isMissingTable(err) {
		// table is created on first use
		if err = s.migrate(ctx); err != nil {
			return nil, err
		}
		err = s.db.WithContext(ctx).Find(&entries).Error
	}
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	all := make(map[string]string, len(entries))
	for _, e := range entries {
		all[e.SectionKey] = e.Value
	}

	if genOK {
		s.fill(ctx, gen, all)
	}

	return all, nil
}

// Upsert creates the entry or fully replaces its value. The conflict is
// resolved inside the database, so racing writers to one key never lose an
// update; the last one wins.
func (s *Store) Upsert(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}

	err := s.upsert(ctx, key, value)
	if err != nil && isMissingTable(err) {
		if err = s.migrate(ctx); err != nil {
			return err
		}
		err = s.upsert(ctx, key, value)
	}
	if err != nil {
		return fmt.Errorf("upsert content %s: %w", key, err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *Store) upsert(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_value", "updated_at"}),
	}).Create(&models.ContentEntry{
		SectionKey: key,
		Value:      value,
	}).Error
}

func (s *Store) migrate(ctx context.Context) error {
	s.l.Warn("content table missing, creating it")
	if err := s.db.WithContext(ctx).AutoMigrate(&models.ContentEntry{}); err != nil {
		return fmt.Errorf("create content table: %w", err)
	}
	return nil
}

func (s *Store) cached(ctx context.Context) (map[string]string, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, constants.CacheKeyContentAll).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.l.Error("failed to query cache for content", zap.Error(err))
		}
		return nil, false
	}
	var all map[string]string
	if err := json.Unmarshal(data, &all); err != nil {
		s.l.Error("failed to unmarshal cached content", zap.ByteString("cacheBytes", data), zap.Error(err))
		// probably a broken entry, drop it
		s.rdb.Del(ctx, constants.CacheKeyContentAll)
		return nil, false
	}
	return all, true
}

// generation is bumped by every Upsert. ok is false when the cache is off or
// unreachable, and then nothing may be filled.
func (s *Store) generation(ctx context.Context) (gen string, ok bool) {
	if s.rdb == nil {
		return "", false
	}
	gen, err := s.rdb.Get(ctx, constants.CacheKeyContentGen).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.l.Error("failed to query content generation", zap.Error(err))
		return "", false
	}
	return gen, true
}

// fill caches all only if no Upsert happened since gen was read.
func (s *Store) fill(ctx context.Context, gen string, all map[string]string) {
	data, err := json.Marshal(all)
	if err != nil {
		s.l.Error("failed to marshal content for cache", zap.Error(err))
		return
	}

	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, constants.CacheKeyContentGen).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, constants.CacheKeyContentAll, data, constants.CacheExpireContentAll)
			return nil
		})
		return err
	}, constants.CacheKeyContentGen)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		s.l.Debug("content changed while loading, cache not filled")
	default:
		s.l.Error("failed to cache content", zap.Error(err))
	}
}

func (s *Store) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, constants.CacheKeyContentGen).Err(); err != nil {
		s.l.Error("failed to bump content generation", zap.Error(err))
	}
	if err := s.rdb.Del(ctx, constants.CacheKeyContentAll).Err(); err != nil {
		s.l.Error("failed to drop content cache", zap.Error(err))
	}
}

// isMissingTable recognises "relation does not exist" from Postgres and its
// sqlite counterpart.
func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return strings.Contains(err.Error(), "no such table")
}
