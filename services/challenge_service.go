package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ctfpractice/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ChallengeService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewChallengeService(db *gorm.DB, log *logrus.Logger) *ChallengeService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChallengeService{db: db, log: log}
}

// ListActive returns active challenges ordered by ascending point value.
func (s *ChallengeService) ListActive(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points ASC").
		Order("title ASC").
		Find(&challenges).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list challenges: %w", ErrStore, err)
	}
	return challenges, nil
}

// GetActive loads one active challenge.
func (s *ChallengeService) GetActive(ctx context.Context, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("%w: load challenge: %w", ErrStore, err)
	}
	return &challenge, nil
}

// SolvedIDs returns the ids of challenges the profile behind userID has
// solved. An unknown user has solved nothing.
func (s *ChallengeService) SolvedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	solved := make(map[string]bool)
	if userID == "" {
		return solved, nil
	}

	var ids []string
	err := s.db.WithContext(ctx).Table("ctf_submissions s").
		Joins("JOIN ctf_profiles p ON p.id = s.profile_id").
		Where("p.user_id = ? AND s.is_correct = ?", userID, true).
		Pluck("s.challenge_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: load solved challenges: %w", ErrStore, err)
	}
	for _, id := range ids {
		solved[id] = true
	}
	return solved, nil
}

// Create validates and stores a new challenge definition.
func (s *ChallengeService) Create(ctx context.Context, ch *models.Challenge) error {
	switch {
	case ch.Title == "" || ch.Description == "":
		return fmt.Errorf("%w: title and description are required", ErrValidation)
	case !ch.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrValidation, ch.Category)
	case !ch.Difficulty.Valid():
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, ch.Difficulty)
	case ch.Points == 0:
		return fmt.Errorf("%w: points must be positive", ErrValidation)
	case strings.TrimSpace(ch.Flag) == "":
		return fmt.Errorf("%w: flag is required", ErrValidation)
	}

	if err := s.db.WithContext(ctx).Create(ch).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: challenge %q already exists", ErrValidation, ch.ID)
		}
		return fmt.Errorf("%w: create challenge: %w", ErrStore, err)
	}
	s.log.WithFields(logrus.Fields{
		"challenge_id": ch.ID,
		"category":     ch.Category,
		"points":       ch.Points,
	}).Info("challenge created")
	return nil
}

// SetActive toggles whether a challenge is listed and accepts submissions.
func (s *ChallengeService) SetActive(ctx context.Context, id string, active bool) error {
	db := s.db.WithContext(ctx)

	var existing models.Challenge
	if err := db.Select("id").Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return fmt.Errorf("%w: load challenge: %w", ErrStore, err)
	}
	if err := db.Model(&models.Challenge{}).Where("id = ?", id).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("%w: update challenge: %w", ErrStore, err)
	}
	s.log.WithFields(logrus.Fields{"challenge_id": id, "active": active}).Info("challenge visibility changed")
	return nil
}
