package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChallengeCategory string
type ChallengeDifficulty string

const (
	CategoryWeb       ChallengeCategory = "Web"
	CategoryCrypto    ChallengeCategory = "Crypto"
	CategoryReverse   ChallengeCategory = "Reverse"
	CategoryForensics ChallengeCategory = "Forensics"
	CategoryOSINT     ChallengeCategory = "OSINT"
	CategoryNetwork   ChallengeCategory = "Network"
	CategoryStego     ChallengeCategory = "Stego"
	CategoryMisc      ChallengeCategory = "Misc"

	DifficultyEasy   ChallengeDifficulty = "easy"
	DifficultyMedium ChallengeDifficulty = "medium"
	DifficultyHard   ChallengeDifficulty = "hard"
	DifficultyExpert ChallengeDifficulty = "expert"
)

var categories = []ChallengeCategory{
	CategoryWeb, CategoryCrypto, CategoryReverse, CategoryForensics,
	CategoryOSINT, CategoryNetwork, CategoryStego, CategoryMisc,
}

// Categories lists the fixed category set in display order.
func Categories() []ChallengeCategory {
	out := make([]ChallengeCategory, len(categories))
	copy(out, categories)
	return out
}

func (c ChallengeCategory) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (d ChallengeDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// Challenge definitions are immutable while a contest is running; only
// IsActive is toggled by admins.
type Challenge struct {
	ID          string              `gorm:"primarykey;size:64"`
	Title       string              `gorm:"size:100;not null"`
	Description string              `gorm:"type:text;not null"`
	Category    ChallengeCategory   `gorm:"size:20;not null;index"`
	Difficulty  ChallengeDifficulty `gorm:"size:20;not null;default:'medium'"`
	Points      uint                `gorm:"not null"`
	Flag        string              `gorm:"size:255;not null"`
	Hint        string              `gorm:"type:text"`
	IsActive    bool                `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Challenge) TableName() string {
	return "ctf_challenges"
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
