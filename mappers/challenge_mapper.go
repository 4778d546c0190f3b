package mappers

import (
	"time"

	"ctfpractice/dto"
	"ctfpractice/models"
)

func MapCreateReqToModel(req dto.CreateChallengeReq) models.Challenge {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return models.Challenge{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    models.ChallengeCategory(req.Category),
		Difficulty:  models.ChallengeDifficulty(req.Difficulty),
		Points:      req.Points,
		Flag:        req.Flag,
		Hint:        req.Hint,
		IsActive:    active,
	}
}

func MapModelToItemResp(ch models.Challenge, solved bool) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:         ch.ID,
		Title:      ch.Title,
		Category:   string(ch.Category),
		Difficulty: string(ch.Difficulty),
		Points:     ch.Points,
		Solved:     solved,
	}
}

func MapModelToDetailResp(ch models.Challenge, solved bool) dto.ChallengeDetailResp {
	return dto.ChallengeDetailResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Description: ch.Description,
		Category:    string(ch.Category),
		Difficulty:  string(ch.Difficulty),
		Points:      ch.Points,
		Hint:        ch.Hint,
		Solved:      solved,
	}
}

func MapModelToAdminResp(ch models.Challenge) dto.AdminChallengeResp {
	return dto.AdminChallengeResp{
		ID:         ch.ID,
		Title:      ch.Title,
		Category:   string(ch.Category),
		Difficulty: string(ch.Difficulty),
		Points:     ch.Points,
		IsActive:   ch.IsActive,
		UpdatedAt:  formatTime(ch.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
