package services

import (
	"context"
	"fmt"

	"ctfpractice/models"

	"gorm.io/gorm"
)

type ContestService struct {
	db *gorm.DB
}

func NewContestService(db *gorm.DB) *ContestService {
	return &ContestService{db: db}
}

// ListActive returns active contests by start time. Status is derived by the
// caller with Contest.StatusAt.
func (s *ContestService) ListActive(ctx context.Context) ([]models.Contest, error) {
	var contests []models.Contest
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("start_time ASC").
		Find(&contests).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list contests: %w", ErrStore, err)
	}
	return contests, nil
}
