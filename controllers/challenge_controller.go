package controllers

import (
	"net/http"

	"ctfpractice/dto"
	"ctfpractice/mappers"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	challenges *services.ChallengeService
}

func NewChallengeController(challenges *services.ChallengeService) *ChallengeController {
	return &ChallengeController{challenges: challenges}
}

// ListChallenges lists active challenges, marking the ones the caller has
// solved when the caller is known.
func (h *ChallengeController) ListChallenges(c *gin.Context) {
	ctx := c.Request.Context()
	challenges, err := h.challenges.ListActive(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	solved, err := h.challenges.SolvedIDs(ctx, optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapModelToItemResp(ch, solved[ch.ID]))
	}
	utils.Success(c, gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

func (h *ChallengeController) GetChallengeDetail(c *gin.Context) {
	ctx := c.Request.Context()
	challenge, err := h.challenges.GetActive(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	solved, err := h.challenges.SolvedIDs(ctx, optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, mappers.MapModelToDetailResp(*challenge, solved[challenge.ID]))
}

// CreateChallenge accepts snake_case and camelCase bodies.
func (h *ChallengeController) CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()

	challenge := mappers.MapCreateReqToModel(req)
	if err := h.challenges.Create(c.Request.Context(), &challenge); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.Response{Success: true, Data: mappers.MapModelToAdminResp(challenge)})
}

func (h *ChallengeController) SetChallengeActive(c *gin.Context) {
	var req dto.SetChallengeActiveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()
	if req.IsActive == nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	id := c.Param("id")
	if err := h.challenges.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, gin.H{"id": id, "is_active": *req.IsActive})
}
