package mappers

import (
	"time"

	"ctfpractice/dto"
	"ctfpractice/models"
)

// MapContestToResp derives status and remaining time at now.
func MapContestToResp(ct models.Contest, now time.Time) dto.ContestResp {
	return dto.ContestResp{
		ID:            ct.ID,
		Name:          ct.Name,
		Description:   ct.Description,
		StartTime:     formatTime(ct.StartTime),
		EndTime:       formatTime(ct.EndTime),
		Status:        string(ct.StatusAt(now)),
		RemainingTime: ct.Remaining(now).String(),
	}
}
