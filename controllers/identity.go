package controllers

import (
	"errors"
	"net/http"
	"strings"

	"ctfpractice/middlewares"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

// callerUserID resolves the external user id of the request. Session callers
// are identified by their token and any requested id is ignored; trusted
// callers name the user explicitly. On failure the response is written and
// ok is false.
func callerUserID(c *gin.Context, requested string) (userID string, ok bool) {
	if id := c.GetString(middlewares.CtxUserID); id != "" {
		return id, true
	}
	if c.GetBool(middlewares.CtxTrustedCaller) {
		requested = strings.TrimSpace(requested)
		if requested == "" {
			utils.Error(c, http.StatusBadRequest, "Missing userId")
			return "", false
		}
		return requested, true
	}
	utils.Error(c, http.StatusUnauthorized, "Unauthorized")
	return "", false
}

// optionalUserID is callerUserID for routes that also serve anonymous
// callers.
func optionalUserID(c *gin.Context) string {
	if id := c.GetString(middlewares.CtxUserID); id != "" {
		return id
	}
	if c.GetBool(middlewares.CtxTrustedCaller) {
		return strings.TrimSpace(c.Query("userId"))
	}
	return ""
}

// respondError maps service errors onto HTTP statuses. Store failures get a
// generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrProfileNotFound):
		utils.Error(c, http.StatusNotFound, "User profile not found")
	case errors.Is(err, services.ErrChallengeNotFound):
		utils.Error(c, http.StatusNotFound, "Challenge not found or inactive")
	default:
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
