package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ctfpractice/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileAttributes are the identity-provider fields copied onto a profile.
type ProfileAttributes struct {
	UserID      string
	Email       string
	Username    string
	DisplayName string
	AvatarURL   string
}

type ProfileService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewProfileService(db *gorm.DB, log *logrus.Logger) *ProfileService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProfileService{db: db, log: log}
}

// SyncProfile creates the profile for attrs.UserID on first contact and
// refreshes its display attributes afterwards. It is a single upsert on the
// unique user_id, so concurrent first contacts end up with one row.
// total_points is never written here.
func (s *ProfileService) SyncProfile(ctx context.Context, attrs ProfileAttributes) (*models.Profile, error) {
	attrs.UserID = strings.TrimSpace(attrs.UserID)
	if attrs.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	profile := models.Profile{
		UserID:      attrs.UserID,
		Email:       attrs.Email,
		Username:    attrs.Username,
		DisplayName: attrs.DisplayName,
		AvatarURL:   attrs.AvatarURL,
		UpdatedAt:   time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "username", "display_name", "avatar_url", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		s.log.WithError(err).WithField("user_id", attrs.UserID).Error("profile upsert failed")
		return nil, fmt.Errorf("%w: upsert profile: %w", ErrStore, err)
	}

	synced, err := s.GetByUserID(ctx, attrs.UserID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":    attrs.UserID,
		"profile_id": synced.ID,
	}).Info("profile synced")
	return synced, nil
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: load profile: %w", ErrStore, err)
	}
	return &profile, nil
}

// SubmissionRecord is a submission joined with its challenge, without the
// submitted text.
type SubmissionRecord struct {
	ID             string
	ChallengeID    string
	ChallengeTitle string
	Category       string
	IsCorrect      bool
	PointsAwarded  uint
	SubmittedAt    time.Time
}

// ListSubmissions returns the caller's submissions, newest first.
func (s *ProfileService) ListSubmissions(ctx context.Context, userID string) ([]SubmissionRecord, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []SubmissionRecord
	err = s.db.WithContext(ctx).Table("ctf_submissions s").
		Select("s.id, s.challenge_id, c.title AS challenge_title, c.category, s.is_correct, s.points_awarded, s.submitted_at").
		Joins("LEFT JOIN ctf_challenges c ON c.id = s.challenge_id").
		Where("s.profile_id = ?", profile.ID).
		Order("s.submitted_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list submissions: %w", ErrStore, err)
	}
	return rows, nil
}
