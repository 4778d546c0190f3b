package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"ctfpractice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_SyncProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates profile on first contact", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db, quietLogger())

		p, err := svc.SyncProfile(ctx, ProfileAttributes{
			UserID:      "auth|42",
			Email:       "alice@example.com",
			Username:    "alice",
			DisplayName: "Alice",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "auth|42", p.UserID)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, uint(0), p.TotalPoints)
	})

	t.Run("refreshes attributes and keeps points", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db, quietLogger())
		seeded := seedProfile(t, db, "auth|42", 300, time.Now())

		p, err := svc.SyncProfile(ctx, ProfileAttributes{
			UserID:      "auth|42",
			Email:       "new@example.com",
			Username:    "alice2",
			DisplayName: "Alice Two",
			AvatarURL:   "https://cdn.example.com/a.png",
		})
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, p.ID)
		assert.Equal(t, uint(300), p.TotalPoints)
		assert.Equal(t, "new@example.com", p.Email)
		assert.Equal(t, "alice2", p.Username)
		assert.Equal(t, "https://cdn.example.com/a.png", p.AvatarURL)

		var n int64
		require.NoError(t, db.Model(&models.Profile{}).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := NewProfileService(newTestDB(t), quietLogger())
		_, err := svc.SyncProfile(ctx, ProfileAttributes{UserID: "  "})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("concurrent first contacts create one row", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db, quietLogger())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.SyncProfile(ctx, ProfileAttributes{UserID: "auth|7", Username: "bob"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		var n int64
		require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", "auth|7").Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})
}

func TestProfileService_GetByUserID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, quietLogger())
	seedProfile(t, db, "u1", 10, time.Now())

	p, err := svc.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, uint(10), p.TotalPoints)

	_, err = svc.GetByUserID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_ListSubmissions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, quietLogger())
	p := seedProfile(t, db, "u1", 0, time.Now())
	seedChallenge(t, db, "c1", 100, "flag{abc}", true)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	key := "c1"
	rows := []models.Submission{
		{ProfileID: p.ID, ChallengeID: "c1", SubmittedFlag: "first", SubmittedAt: base},
		{ProfileID: p.ID, ChallengeID: "c1", SubmittedFlag: "flag{abc}", IsCorrect: true, PointsAwarded: 100, SolveKey: &key, SubmittedAt: base.Add(time.Minute)},
	}
	require.NoError(t, db.Create(&rows).Error)

	got, err := svc.ListSubmissions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsCorrect, "newest first")
	assert.Equal(t, "Challenge c1", got[0].ChallengeTitle)
	assert.Equal(t, string(models.CategoryWeb), got[0].Category)
	assert.False(t, got[1].IsCorrect)

	_, err = svc.ListSubmissions(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
