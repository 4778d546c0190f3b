package dto

// SubmitFlagReq is the submission request. UserID is honoured only under the
// trusted-caller model.
type SubmitFlagReq struct {
	ChallengeID   string `json:"challengeId"`
	SubmittedFlag string `json:"submittedFlag"`
	UserID        string `json:"userId"`

	ChallengeIDSnake   string `json:"challenge_id"`
	SubmittedFlagSnake string `json:"submitted_flag"`
	UserIDSnake        string `json:"user_id"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.ChallengeID == "" && r.ChallengeIDSnake != "" {
		r.ChallengeID = r.ChallengeIDSnake
	}
	if r.SubmittedFlag == "" && r.SubmittedFlagSnake != "" {
		r.SubmittedFlag = r.SubmittedFlagSnake
	}
	if r.UserID == "" && r.UserIDSnake != "" {
		r.UserID = r.UserIDSnake
	}
}

type SubmitFlagResp struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PointsAwarded uint   `json:"pointsAwarded"`
}

// SubmissionItemResp omits the submitted text so a solved flag is never echoed.
type SubmissionItemResp struct {
	ID             string `json:"id"`
	ChallengeID    string `json:"challenge_id"`
	ChallengeTitle string `json:"challenge_title"`
	Category       string `json:"category"`
	IsCorrect      bool   `json:"is_correct"`
	PointsAwarded  uint   `json:"points_awarded"`
	SubmittedAt    string `json:"submitted_at"`
}

// SubmissionLogResp is the admin audit view. SubmittedFlag is filled only
// for wrong attempts.
type SubmissionLogResp struct {
	ID            string `json:"id"`
	ProfileID     string `json:"profile_id"`
	Username      string `json:"username"`
	ChallengeID   string `json:"challenge_id"`
	IsCorrect     bool   `json:"is_correct"`
	PointsAwarded uint   `json:"points_awarded"`
	SubmittedFlag string `json:"submitted_flag,omitempty"`
	SubmittedAt   string `json:"submitted_at"`
}
