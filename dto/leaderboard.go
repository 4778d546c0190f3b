package dto

// LeaderboardEntry is one ranked row; it is also the Redis cache payload.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	ProfileID   string `json:"profile_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	TotalPoints uint   `json:"total_points"`
}

type ContestResp struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	RemainingTime string `json:"remaining_time"`
}
