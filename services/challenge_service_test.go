package services

import (
	"context"
	"testing"
	"time"

	"ctfpractice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeService_ListActive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedChallenge(t, db, "b", 200, "f", true)
	seedChallenge(t, db, "a", 200, "f", true)
	seedChallenge(t, db, "c", 50, "f", true)
	seedChallenge(t, db, "hidden", 10, "f", false)

	svc := NewChallengeService(db, quietLogger())
	got, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})

	_, err = svc.GetActive(ctx, "hidden")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
	ch, err := svc.GetActive(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint(200), ch.Points)
}

func TestChallengeService_SolvedIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedProfile(t, db, "u1", 0, time.Now())
	seedChallenge(t, db, "c1", 100, "flag{one}", true)
	seedChallenge(t, db, "c2", 100, "flag{two}", true)

	subs := NewSubmissionService(db, nil, nil, nil, quietLogger())
	_, err := subs.Submit(ctx, "u1", "c1", "flag{one}")
	require.NoError(t, err)
	_, err = subs.Submit(ctx, "u1", "c2", "nope")
	require.NoError(t, err)

	svc := NewChallengeService(db, quietLogger())
	solved, err := svc.SolvedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c1": true}, solved)

	anon, err := svc.SolvedIDs(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, anon)
}

func TestChallengeService_Create(t *testing.T) {
	ctx := context.Background()

	valid := func() models.Challenge {
		return models.Challenge{
			ID:          "sqli-101",
			Title:       "Login Bypass",
			Description: "Get in without a password.",
			Category:    models.CategoryWeb,
			Difficulty:  models.DifficultyEasy,
			Points:      100,
			Flag:        "flag{or_1_eq_1}",
			IsActive:    true,
		}
	}

	t.Run("stores a valid challenge", func(t *testing.T) {
		svc := NewChallengeService(newTestDB(t), quietLogger())
		ch := valid()
		require.NoError(t, svc.Create(ctx, &ch))
		got, err := svc.GetActive(ctx, "sqli-101")
		require.NoError(t, err)
		assert.Equal(t, "Login Bypass", got.Title)
	})

	t.Run("rejects invalid definitions", func(t *testing.T) {
		svc := NewChallengeService(newTestDB(t), quietLogger())
		cases := map[string]func(*models.Challenge){
			"no title":           func(c *models.Challenge) { c.Title = "" },
			"unknown category":   func(c *models.Challenge) { c.Category = "Pwn" },
			"unknown difficulty": func(c *models.Challenge) { c.Difficulty = "insane" },
			"zero points":        func(c *models.Challenge) { c.Points = 0 },
			"blank flag":         func(c *models.Challenge) { c.Flag = "  " },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				ch := valid()
				mutate(&ch)
				assert.ErrorIs(t, svc.Create(ctx, &ch), ErrValidation)
			})
		}
	})

	t.Run("inactive challenge stays hidden", func(t *testing.T) {
		db := newTestDB(t)
		seedProfile(t, db, "u1", 0, time.Now())
		svc := NewChallengeService(db, quietLogger())
		ch := valid()
		ch.ID = "draft"
		ch.IsActive = false
		require.NoError(t, svc.Create(ctx, &ch))

		var stored models.Challenge
		require.NoError(t, db.Where("id = ?", "draft").First(&stored).Error)
		assert.False(t, stored.IsActive)

		_, err := svc.GetActive(ctx, "draft")
		assert.ErrorIs(t, err, ErrChallengeNotFound)
		listed, err := svc.ListActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed)

		subs := NewSubmissionService(db, nil, nil, nil, quietLogger())
		_, err = subs.Submit(ctx, "u1", "draft", ch.Flag)
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		svc := NewChallengeService(newTestDB(t), quietLogger())
		first, second := valid(), valid()
		require.NoError(t, svc.Create(ctx, &first))
		assert.ErrorIs(t, svc.Create(ctx, &second), ErrValidation)
	})
}

func TestChallengeService_SetActive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedChallenge(t, db, "c1", 100, "flag{abc}", true)
	svc := NewChallengeService(db, quietLogger())

	require.NoError(t, svc.SetActive(ctx, "c1", false))
	_, err := svc.GetActive(ctx, "c1")
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	// Setting the same value again is not an error.
	require.NoError(t, svc.SetActive(ctx, "c1", false))

	require.NoError(t, svc.SetActive(ctx, "c1", true))
	_, err = svc.GetActive(ctx, "c1")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.SetActive(ctx, "missing", true), ErrChallengeNotFound)
}

func TestContestService_ListActive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	now := time.Now().UTC()

	contests := []models.Contest{
		{Name: "Later", StartTime: now.Add(48 * time.Hour), EndTime: now.Add(72 * time.Hour), IsActive: true},
		{Name: "Now", StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), IsActive: true},
		{Name: "Archived", StartTime: now.Add(-72 * time.Hour), EndTime: now.Add(-48 * time.Hour), IsActive: false},
	}
	require.NoError(t, db.Create(&contests).Error)

	got, err := NewContestService(db).ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Now", got[0].Name)
	assert.Equal(t, "Later", got[1].Name)
}
