package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type ChangeType string

const (
	ChangeSubmissionInserted ChangeType = "submission.inserted"
	ChangeProfilePoints      ChangeType = "profile.points_updated"
)

// ChangeEvent describes one committed store mutation. It never carries a
// flag value.
type ChangeEvent struct {
	Type         ChangeType `json:"type"`
	ProfileID    string     `json:"profileId"`
	ChallengeID  string     `json:"challengeId,omitempty"`
	SubmissionID string     `json:"submissionId,omitempty"`
	IsCorrect    bool       `json:"isCorrect,omitempty"`
	Points       uint       `json:"points"`
	TotalPoints  uint       `json:"totalPoints,omitempty"`
	At           time.Time  `json:"at"`
}

// Notifier publishes committed changes so realtime consumers can refresh
// leaderboard and submission views.
type Notifier interface {
	Publish(ctx context.Context, events ...ChangeEvent) error
}

// NopNotifier drops every event. Used when Redis is disabled.
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, ...ChangeEvent) error { return nil }

// RedisNotifier publishes JSON-encoded events on a pub/sub channel.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) Publish(ctx context.Context, events ...ChangeEvent) error {
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", ev.Type, err)
		}
		if err := n.rdb.Publish(ctx, n.channel, payload).Err(); err != nil {
			return fmt.Errorf("publish %s event: %w", ev.Type, err)
		}
	}
	return nil
}
