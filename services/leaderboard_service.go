package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ctfpractice/dto"
	"ctfpractice/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	leaderboardKeyPrefix = "leaderboard:"
	// Bumped on every invalidation. Kept outside the page prefix so the
	// page sweep does not remove it.
	leaderboardVersionKey = "leaderboard_version"
)

// LeaderboardService ranks profiles by total points. Results are cached in
// Redis for a short TTL and dropped whenever a score changes.
type LeaderboardService struct {
	db           *gorm.DB
	rdb          *redis.Client
	ttl          time.Duration
	defaultLimit int
	maxLimit     int
	log          *logrus.Logger
}

// NewLeaderboardService builds the service. rdb may be nil, which disables
// caching.
func NewLeaderboardService(db *gorm.DB, rdb *redis.Client, ttl time.Duration, defaultLimit, maxLimit int, log *logrus.Logger) *LeaderboardService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LeaderboardService{
		db:           db,
		rdb:          rdb,
		ttl:          ttl,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		log:          log,
	}
}

// ClampLimit maps a requested top-N onto the configured bounds.
func (s *LeaderboardService) ClampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func cacheKey(limit int) string {
	return fmt.Sprintf("%stop:%d", leaderboardKeyPrefix, limit)
}

// Top returns the first limit profiles by descending points, earliest
// profile first on ties. The bool reports a cache hit.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]dto.LeaderboardEntry, bool, error) {
	limit = s.ClampLimit(limit)
	key := cacheKey(limit)

	var version int64
	if s.rdb != nil {
		version = s.cacheVersion(ctx)
		val, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var cached []dto.LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, true, nil
			}
		} else if err != redis.Nil {
			s.log.WithError(err).Warn("leaderboard cache read failed")
		}
	}

	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Order("total_points DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, false, fmt.Errorf("%w: load leaderboard: %w", ErrStore, err)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:        i + 1,
			ProfileID:   p.ID,
			Username:    p.Username,
			DisplayName: p.DisplayName,
			AvatarURL:   p.AvatarURL,
			TotalPoints: p.TotalPoints,
		})
	}

	if s.rdb != nil {
		if err := s.writeCache(ctx, key, entries, version); err != nil {
			s.log.WithError(err).Warn("leaderboard cache write failed")
		}
	}
	return entries, false, nil
}

func (s *LeaderboardService) cacheVersion(ctx context.Context) int64 {
	v, err := s.rdb.Get(ctx, leaderboardVersionKey).Int64()
	if err != nil && err != redis.Nil {
		s.log.WithError(err).Warn("leaderboard cache version read failed")
	}
	return v
}

// writeCache stores a page only if no invalidation happened since version
// was read; otherwise the page may predate a score change and is dropped.
func (s *LeaderboardService) writeCache(ctx context.Context, key string, entries []dto.LeaderboardEntry, version int64) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, leaderboardVersionKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, leaderboardVersionKey)
	if err == redis.TxFailedErr {
		return nil
	}
	return err
}

// Invalidate removes every cached leaderboard page.
func (s *LeaderboardService) Invalidate(ctx context.Context) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	if err := s.rdb.Incr(ctx, leaderboardVersionKey).Err(); err != nil {
		return fmt.Errorf("bump leaderboard version: %w", err)
	}
	var keys []string
	iter := s.rdb.Scan(ctx, 0, leaderboardKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan leaderboard keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete leaderboard keys: %w", err)
	}
	s.log.WithField("keys", len(keys)).Debug("cleared leaderboard cache")
	return nil
}
