package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ctfpractice/metrics"
	"ctfpractice/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxSubmittedFlagLen = 512

type SubmissionOutcome string

const (
	OutcomeCorrect       SubmissionOutcome = "correct"
	OutcomeIncorrect     SubmissionOutcome = "incorrect"
	OutcomeAlreadySolved SubmissionOutcome = "already_solved"
)

const (
	msgAlreadySolved = "You have already solved this challenge!"
	msgIncorrect     = "Incorrect flag. Keep trying!"
)

// SubmissionResult is the outcome of one Submit call.
type SubmissionResult struct {
	Success       bool
	Message       string
	PointsAwarded uint
	Outcome       SubmissionOutcome
	SubmissionID  string
}

func alreadySolvedResult() *SubmissionResult {
	return &SubmissionResult{Message: msgAlreadySolved, Outcome: OutcomeAlreadySolved}
}

// CheckFlag compares a candidate against the stored secret after trimming
// surrounding whitespace on both. The comparison is exact and case-sensitive.
func CheckFlag(submitted, secret string) bool {
	return strings.TrimSpace(submitted) == strings.TrimSpace(secret)
}

// LeaderboardInvalidator drops cached rankings after a score change.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SubmissionService validates flags and awards points at most once per
// profile and challenge. It keeps no state between calls.
type SubmissionService struct {
	db       *gorm.DB
	notifier Notifier
	board    LeaderboardInvalidator
	metrics  *metrics.Metrics
	log      *logrus.Logger
}

func NewSubmissionService(db *gorm.DB, notifier Notifier, board LeaderboardInvalidator, m *metrics.Metrics, log *logrus.Logger) *SubmissionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SubmissionService{db: db, notifier: notifier, board: board, metrics: m, log: log}
}

// forUpdate adds a row lock on dialects that support one. SQLite serializes
// writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Submit scores one flag attempt by the profile whose external identity is
// userID. The check for an existing solve, the insert and the points
// increment run in one transaction; the unique solve index turns a losing
// concurrent writer into AlreadySolved.
func (s *SubmissionService) Submit(ctx context.Context, userID, challengeID, submittedFlag string) (*SubmissionResult, error) {
	userID = strings.TrimSpace(userID)
	challengeID = strings.TrimSpace(challengeID)
	switch {
	case userID == "":
		return nil, fmt.Errorf("%w: user identity is required", ErrValidation)
	case challengeID == "":
		return nil, fmt.Errorf("%w: challengeId is required", ErrValidation)
	case strings.TrimSpace(submittedFlag) == "":
		return nil, fmt.Errorf("%w: submittedFlag is required", ErrValidation)
	case len(submittedFlag) > maxSubmittedFlagLen:
		return nil, fmt.Errorf("%w: submittedFlag is too long", ErrValidation)
	}

	var (
		result    *SubmissionResult
		events    []ChangeEvent
		profileID string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := forUpdate(tx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load profile: %w", err)
		}
		profileID = profile.ID

		var challenge models.Challenge
		if err := tx.Where("id = ? AND is_active = ?", challengeID, true).First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return fmt.Errorf("load challenge: %w", err)
		}

		var solved int64
		if err := tx.Model(&models.Submission{}).
			Where("profile_id = ? AND challenge_id = ? AND is_correct = ?", profile.ID, challenge.ID, true).
			Count(&solved).Error; err != nil {
			return fmt.Errorf("check existing solve: %w", err)
		}
		if solved > 0 {
			result = alreadySolvedResult()
			return nil
		}

		isCorrect := CheckFlag(submittedFlag, challenge.Flag)
		submission := models.Submission{
			ProfileID:     profile.ID,
			ChallengeID:   challenge.ID,
			SubmittedFlag: submittedFlag,
			IsCorrect:     isCorrect,
		}
		if isCorrect {
			key := challenge.ID
			submission.SolveKey = &key
			submission.PointsAwarded = challenge.Points
		}
		if err := tx.Create(&submission).Error; err != nil {
			if isUniqueViolation(err) {
				return errSolveRace
			}
			return fmt.Errorf("insert submission: %w", err)
		}
		events = append(events, ChangeEvent{
			Type:         ChangeSubmissionInserted,
			ProfileID:    profile.ID,
			ChallengeID:  challenge.ID,
			SubmissionID: submission.ID,
			IsCorrect:    isCorrect,
			Points:       submission.PointsAwarded,
			At:           submission.SubmittedAt,
		})

		if !isCorrect {
			result = &SubmissionResult{
				Message:      msgIncorrect,
				Outcome:      OutcomeIncorrect,
				SubmissionID: submission.ID,
			}
			return nil
		}

		if err := tx.Model(&models.Profile{}).
			Where("id = ?", profile.ID).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", challenge.Points)).Error; err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		var updated models.Profile
		if err := tx.Select("id", "total_points").Where("id = ?", profile.ID).First(&updated).Error; err != nil {
			return fmt.Errorf("reload profile: %w", err)
		}
		events = append(events, ChangeEvent{
			Type:        ChangeProfilePoints,
			ProfileID:   profile.ID,
			ChallengeID: challenge.ID,
			Points:      challenge.Points,
			TotalPoints: updated.TotalPoints,
			At:          time.Now(),
		})

		result = &SubmissionResult{
			Success:       true,
			Message:       fmt.Sprintf("Congratulations! You earned %d points.", challenge.Points),
			PointsAwarded: challenge.Points,
			Outcome:       OutcomeCorrect,
			SubmissionID:  submission.ID,
		}
		return nil
	})

	if errors.Is(err, errSolveRace) {
		result, events, err = alreadySolvedResult(), nil, nil
	}
	if err != nil {
		if IsDomainError(err) {
			return nil, err
		}
		s.metrics.ObserveSubmission(metrics.OutcomeError)
		s.logger().WithError(err).WithFields(logrus.Fields{
			"user_id":      userID,
			"challenge_id": challengeID,
		}).Error("flag submission failed")
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.afterCommit(ctx, profileID, challengeID, result, events)
	return result, nil
}

// afterCommit runs the side channels of a committed submission. Their
// failures are logged and never change the result.
func (s *SubmissionService) afterCommit(ctx context.Context, profileID, challengeID string, result *SubmissionResult, events []ChangeEvent) {
	entry := s.logger().WithFields(logrus.Fields{
		"profile_id":   profileID,
		"challenge_id": challengeID,
		"outcome":      result.Outcome,
		"points":       result.PointsAwarded,
	})

	switch result.Outcome {
	case OutcomeCorrect:
		s.metrics.ObserveSubmission(metrics.OutcomeCorrect)
		if s.board != nil {
			if err := s.board.Invalidate(ctx); err != nil {
				entry.WithError(err).Warn("leaderboard cache invalidation failed")
			}
		}
	case OutcomeIncorrect:
		s.metrics.ObserveSubmission(metrics.OutcomeWrong)
	case OutcomeAlreadySolved:
		s.metrics.ObserveSubmission(metrics.OutcomeAlreadySolved)
	}

	if len(events) > 0 {
		if err := s.notifier.Publish(ctx, events...); err != nil {
			entry.WithError(err).Warn("change notification failed")
		}
	}
	entry.Info("flag submission processed")
}

func (s *SubmissionService) logger() *logrus.Logger {
	if s.log == nil {
		return logrus.StandardLogger()
	}
	return s.log
}

// SubmissionLogFilter narrows the admin audit listing.
type SubmissionLogFilter struct {
	ChallengeID string
	ProfileID   string
	Result      string // correct | wrong
	Page        int
	Limit       int
}

// SubmissionLogRow is one audit row joined with the submitter's username.
type SubmissionLogRow struct {
	ID            string
	ProfileID     string
	Username      string
	ChallengeID   string
	SubmittedFlag string
	IsCorrect     bool
	PointsAwarded uint
	SubmittedAt   time.Time
}

// ListLog returns the audit trail of attempts, newest first, plus the total
// count matching the filter.
func (s *SubmissionService) ListLog(ctx context.Context, f SubmissionLogFilter) ([]SubmissionLogRow, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	db := s.db.WithContext(ctx).Table("ctf_submissions s").
		Joins("LEFT JOIN ctf_profiles p ON p.id = s.profile_id")
	if f.ChallengeID != "" {
		db = db.Where("s.challenge_id = ?", f.ChallengeID)
	}
	if f.ProfileID != "" {
		db = db.Where("s.profile_id = ?", f.ProfileID)
	}
	switch f.Result {
	case "correct":
		db = db.Where("s.is_correct = ?", true)
	case "wrong":
		db = db.Where("s.is_correct = ?", false)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count submissions: %w", ErrStore, err)
	}

	var rows []SubmissionLogRow
	err := db.Select("s.id, s.profile_id, p.username, s.challenge_id, s.submitted_flag, s.is_correct, s.points_awarded, s.submitted_at").
		Order("s.submitted_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list submissions: %w", ErrStore, err)
	}
	return rows, total, nil
}
