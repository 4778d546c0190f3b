package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrProfileNotFound means the caller has no provisioned profile.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrChallengeNotFound covers both missing and inactive challenges.
	ErrChallengeNotFound = errors.New("challenge not found or inactive")
	// ErrUnauthorized is returned when the caller identity cannot be trusted.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStore wraps backing-store failures. Safe to retry.
	ErrStore = errors.New("store failure")
)

// errSolveRace is returned from inside the scoring transaction when the
// unique solve index rejects a second winning row.
var errSolveRace = errors.New("concurrent solve already recorded")

const mysqlDuplicateEntry = 1062

// isUniqueViolation reports whether err is a unique-constraint violation on
// any supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsDomainError reports whether err is one of the client-facing sentinels
// rather than a store failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrUnauthorized)
}
