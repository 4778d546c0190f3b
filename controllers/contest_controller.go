package controllers

import (
	"time"

	"ctfpractice/dto"
	"ctfpractice/mappers"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

type ContestController struct {
	contests *services.ContestService
	now      func() time.Time
}

func NewContestController(contests *services.ContestService) *ContestController {
	return &ContestController{contests: contests, now: time.Now}
}

// ListContests returns active contests with their status at request time.
func (h *ContestController) ListContests(c *gin.Context) {
	contests, err := h.contests.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	now := h.now()
	items := make([]dto.ContestResp, 0, len(contests))
	for _, ct := range contests {
		items = append(items, mappers.MapContestToResp(ct, now))
	}
	utils.Success(c, gin.H{
		"total":    len(items),
		"contests": items,
	})
}
