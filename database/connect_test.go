package database

import (
	"bytes"
	"path/filepath"
	"testing"

	"ctfpractice/config"
	"ctfpractice/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "ctf.db")
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, MaxOpenConns: 10}, nil)
	require.NoError(t, err)
	require.NoError(t, MigrateTables(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	m := db.Migrator()
	for _, table := range []interface{}{&models.Profile{}, &models.Challenge{}, &models.Submission{}, &models.Contest{}} {
		assert.True(t, m.HasTable(table))
	}
	assert.True(t, m.HasIndex(&models.Submission{}, "idx_ctf_submission_solve"))
	assert.True(t, m.HasIndex(&models.Profile{}, "idx_ctf_profile_user"))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "oracle", DSN: "x"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewGormLogger_HidesBoundValues(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "ctf.db")}, log)
	require.NoError(t, err)
	require.NoError(t, MigrateTables(db))

	key := "c1"
	row := models.Submission{ID: "s1", ProfileID: "p1", ChallengeID: "c1", SubmittedFlag: "flag{secret}", IsCorrect: true, SolveKey: &key}
	require.NoError(t, db.Create(&row).Error)
	dup := row
	dup.ID = "s2"
	require.Error(t, db.Create(&dup).Error)

	out := buf.String()
	assert.Contains(t, out, "ctf_submissions")
	assert.Contains(t, out, `"component":"gorm"`)
	assert.NotContains(t, out, "flag{secret}")

	buf.Reset()
	var missing models.Profile
	assert.Error(t, db.Where("user_id = ?", "nobody").First(&missing).Error)
	assert.Empty(t, buf.String(), "record-not-found is not logged")
}
