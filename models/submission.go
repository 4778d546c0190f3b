package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is one flag attempt. Rows are append-only.
//
// SolveKey holds the challenge id for correct attempts and NULL otherwise;
// the unique index on (profile_id, solve_key) lets any number of wrong
// attempts coexist with at most one winning row per profile and challenge.
type Submission struct {
	ID            string    `gorm:"primarykey;size:36"`
	ProfileID     string    `gorm:"size:36;not null;index;uniqueIndex:idx_ctf_submission_solve,priority:1"`
	ChallengeID   string    `gorm:"size:64;not null;index"`
	SubmittedFlag string    `gorm:"size:512;not null"`
	IsCorrect     bool      `gorm:"not null;default:false"`
	PointsAwarded uint      `gorm:"not null;default:0"`
	SolveKey      *string   `gorm:"size:64;uniqueIndex:idx_ctf_submission_solve,priority:2"`
	SubmittedAt   time.Time `gorm:"not null;index"`
}

func (Submission) TableName() string {
	return "ctf_submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	return nil
}
