package controllers

import (
	"net/http"

	"ctfpractice/dto"
	"ctfpractice/mappers"
	"ctfpractice/middlewares"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// SyncProfile provisions or refreshes the caller's profile. Session callers
// may omit attributes that their token already carries.
func (h *ProfileController) SyncProfile(c *gin.Context) {
	var req dto.SyncProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()

	userID, ok := callerUserID(c, req.UserID)
	if !ok {
		return
	}
	if v, exists := c.Get(middlewares.CtxClaims); exists {
		if claims, ok := v.(*utils.Claims); ok {
			fillFromClaims(&req, claims)
		}
	}

	profile, err := h.profiles.SyncProfile(c.Request.Context(), mappers.MapSyncReqToAttributes(userID, req))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, mappers.MapProfileToResp(*profile))
}

func fillFromClaims(req *dto.SyncProfileReq, claims *utils.Claims) {
	if req.Email == "" {
		req.Email = claims.Email
	}
	if req.Username == "" {
		req.Username = claims.Username
	}
	if req.DisplayName == "" {
		req.DisplayName = claims.DisplayName
	}
	if req.AvatarURL == "" {
		req.AvatarURL = claims.AvatarURL
	}
}

func (h *ProfileController) GetMe(c *gin.Context) {
	userID, ok := callerUserID(c, c.Query("userId"))
	if !ok {
		return
	}
	profile, err := h.profiles.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, mappers.MapProfileToResp(*profile))
}

func (h *ProfileController) ListMySubmissions(c *gin.Context) {
	userID, ok := callerUserID(c, c.Query("userId"))
	if !ok {
		return
	}
	rows, err := h.profiles.ListSubmissions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	items := mappers.MapSubmissionRecords(rows)
	utils.Success(c, gin.H{
		"total":       len(items),
		"submissions": items,
	})
}
