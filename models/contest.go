package models

import (
	"time"
)

// ContestStatus is derived from the current time, never stored.
type ContestStatus string

const (
	ContestStatusUpcoming ContestStatus = "upcoming"
	ContestStatusLive     ContestStatus = "live"
	ContestStatusEnded    ContestStatus = "ended"
)

type Contest struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Contest) TableName() string {
	return "ctf_contests"
}

// StatusAt reports the contest phase at now. Both bounds are inclusive of live.
func (c Contest) StatusAt(now time.Time) ContestStatus {
	if now.Before(c.StartTime) {
		return ContestStatusUpcoming
	}
	if now.After(c.EndTime) {
		return ContestStatusEnded
	}
	return ContestStatusLive
}

// Remaining is the time until the next phase change, zero once ended.
func (c Contest) Remaining(now time.Time) time.Duration {
	switch c.StatusAt(now) {
	case ContestStatusUpcoming:
		return c.StartTime.Sub(now).Round(time.Second)
	case ContestStatusLive:
		return c.EndTime.Sub(now).Round(time.Second)
	}
	return 0
}
