package dto

import "strings"

// ========== Requests ==========

// CreateChallengeReq accepts both snake_case and camelCase keys.
type CreateChallengeReq struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Points      uint   `json:"points"`
	Flag        string `json:"flag"`
	Hint        string `json:"hint"`
	IsActive    *bool  `json:"is_active"`

	IsActiveCamel *bool `json:"isActive"`
}

// Normalize folds aliases and trims text fields. The flag is left as sent;
// comparison trims both sides.
func (r *CreateChallengeReq) Normalize() {
	if r.IsActive == nil && r.IsActiveCamel != nil {
		r.IsActive = r.IsActiveCamel
	}
	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
}

type SetChallengeActiveReq struct {
	IsActive      *bool `json:"is_active"`
	IsActiveCamel *bool `json:"isActive"`
}

func (r *SetChallengeActiveReq) Normalize() {
	if r.IsActive == nil && r.IsActiveCamel != nil {
		r.IsActive = r.IsActiveCamel
	}
}

// ========== Responses ==========

// ChallengeItemResp never carries the flag.
type ChallengeItemResp struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Points     uint   `json:"points"`
	Solved     bool   `json:"solved"`
}

type ChallengeDetailResp struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Points      uint   `json:"points"`
	Hint        string `json:"hint,omitempty"`
	Solved      bool   `json:"solved"`
}

type AdminChallengeResp struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Points     uint   `json:"points"`
	IsActive   bool   `json:"is_active"`
	UpdatedAt  string `json:"updated_at"`
}
