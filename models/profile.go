package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a participant's persistent record. UserID is the identity
// provider's stable subject and is unique.
type Profile struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	UserID      string    `gorm:"column:user_id;size:128;uniqueIndex:idx_ctf_profile_user;not null" json:"user_id"`
	Email       string    `gorm:"size:255" json:"email"`
	Username    string    `gorm:"size:100" json:"username"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	AvatarURL   string    `gorm:"size:1024" json:"avatar_url"`
	TotalPoints uint      `gorm:"not null;default:0;index" json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "ctf_profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
