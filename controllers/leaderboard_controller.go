package controllers

import (
	"strconv"

	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardController(leaderboard *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

// GetLeaderboard returns the top-N profiles. Out-of-range limits fall back to
// the configured bounds.
func (h *LeaderboardController) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	limit = h.leaderboard.ClampLimit(limit)

	entries, cached, err := h.leaderboard.Top(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"limit":   limit,
		"cached":  cached,
		"entries": entries,
	})
}
