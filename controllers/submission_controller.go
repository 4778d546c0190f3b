package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"ctfpractice/dto"
	"ctfpractice/mappers"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	submissions *services.SubmissionService
}

func NewSubmissionController(submissions *services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissions: submissions}
}

// SubmitFlag scores one flag attempt. Wrong and repeated attempts are normal
// outcomes and answer 200 with success=false.
func (h *SubmissionController) SubmitFlag(c *gin.Context) {
	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()

	userID, ok := callerUserID(c, req.UserID)
	if !ok {
		return
	}
	if strings.TrimSpace(req.ChallengeID) == "" || strings.TrimSpace(req.SubmittedFlag) == "" {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), userID, req.ChallengeID, req.SubmittedFlag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubmitFlagResp{
		Success:       result.Success,
		Message:       result.Message,
		PointsAwarded: result.PointsAwarded,
	})
}

// ListSubmissionLog is the admin audit trail.
func (h *SubmissionController) ListSubmissionLog(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	result := c.Query("result")
	if result != "" && result != "correct" && result != "wrong" {
		utils.Error(c, http.StatusBadRequest, "result must be correct or wrong")
		return
	}

	filter := services.SubmissionLogFilter{
		ChallengeID: c.Query("challenge_id"),
		ProfileID:   c.Query("profile_id"),
		Result:      result,
		Page:        page,
		Limit:       limit,
	}
	rows, total, err := h.submissions.ListLog(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"total": total,
		"items": mappers.MapSubmissionLog(rows),
	})
}
