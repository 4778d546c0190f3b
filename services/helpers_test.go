package services

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"ctfpractice/config"
	"ctfpractice/database"
	"ctfpractice/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newTestDBWithLogger(t, quietLogger())
}

func newTestDBWithLogger(t *testing.T, log *logrus.Logger) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ctf.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, log)
	require.NoError(t, err)
	require.NoError(t, database.MigrateTables(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedProfile(t *testing.T, db *gorm.DB, userID string, points uint, createdAt time.Time) models.Profile {
	t.Helper()
	p := models.Profile{
		UserID:      userID,
		Username:    userID,
		DisplayName: "Player " + userID,
		TotalPoints: points,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedChallenge(t *testing.T, db *gorm.DB, id string, points uint, flag string, active bool) models.Challenge {
	t.Helper()
	ch := models.Challenge{
		ID:          id,
		Title:       "Challenge " + id,
		Description: "Find the flag.",
		Category:    models.CategoryWeb,
		Difficulty:  models.DifficultyEasy,
		Points:      points,
		Flag:        flag,
		IsActive:    active,
	}
	require.NoError(t, db.Create(&ch).Error)
	return ch
}

func pointsOf(t *testing.T, db *gorm.DB, userID string) uint {
	t.Helper()
	var p models.Profile
	require.NoError(t, db.Where("user_id = ?", userID).First(&p).Error)
	return p.TotalPoints
}

func countSubmissions(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Submission{}).Where(where, args...).Count(&n).Error)
	return n
}
