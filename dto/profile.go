package dto

import "strings"

type SyncProfileReq struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`

	UserIDSnake      string `json:"user_id"`
	DisplayNameSnake string `json:"display_name"`
	AvatarURLSnake   string `json:"avatar_url"`
}

func (r *SyncProfileReq) Normalize() {
	if r.UserID == "" {
		r.UserID = r.UserIDSnake
	}
	if r.DisplayName == "" {
		r.DisplayName = r.DisplayNameSnake
	}
	if r.AvatarURL == "" {
		r.AvatarURL = r.AvatarURLSnake
	}
	r.UserID = strings.TrimSpace(r.UserID)
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.AvatarURL = strings.TrimSpace(r.AvatarURL)
}

type ProfileResp struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	TotalPoints uint   `json:"total_points"`
}
