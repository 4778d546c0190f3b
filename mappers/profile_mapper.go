package mappers

import (
	"ctfpractice/dto"
	"ctfpractice/models"
	"ctfpractice/services"
)

func MapProfileToResp(p models.Profile) dto.ProfileResp {
	return dto.ProfileResp{
		ID:          p.ID,
		UserID:      p.UserID,
		Email:       p.Email,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		TotalPoints: p.TotalPoints,
	}
}

func MapSyncReqToAttributes(userID string, req dto.SyncProfileReq) services.ProfileAttributes {
	return services.ProfileAttributes{
		UserID:      userID,
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	}
}

func MapSubmissionRecords(rows []services.SubmissionRecord) []dto.SubmissionItemResp {
	items := make([]dto.SubmissionItemResp, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SubmissionItemResp{
			ID:             r.ID,
			ChallengeID:    r.ChallengeID,
			ChallengeTitle: r.ChallengeTitle,
			Category:       r.Category,
			IsCorrect:      r.IsCorrect,
			PointsAwarded:  r.PointsAwarded,
			SubmittedAt:    formatTime(r.SubmittedAt),
		})
	}
	return items
}

// MapSubmissionLog builds the admin view. The submitted text of a correct
// attempt equals the flag and is withheld.
func MapSubmissionLog(rows []services.SubmissionLogRow) []dto.SubmissionLogResp {
	items := make([]dto.SubmissionLogResp, 0, len(rows))
	for _, r := range rows {
		item := dto.SubmissionLogResp{
			ID:            r.ID,
			ProfileID:     r.ProfileID,
			Username:      r.Username,
			ChallengeID:   r.ChallengeID,
			IsCorrect:     r.IsCorrect,
			PointsAwarded: r.PointsAwarded,
			SubmittedAt:   formatTime(r.SubmittedAt),
		}
		if !r.IsCorrect {
			item.SubmittedFlag = r.SubmittedFlag
		}
		items = append(items, item)
	}
	return items
}
