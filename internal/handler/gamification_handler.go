package handler

import (
	"net/http"
	"strconv"

	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type GamificationHandler struct {
	gamification service.GamificationService
}

func NewGamificationHandler(gamification service.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamification: gamification}
}

// ClaimDailyLogin claims today's login bonus. Claiming twice on the same
// calendar day is not an error; the response just says so.
func (h *GamificationHandler) ClaimDailyLogin(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.gamification.ClaimDailyLogin(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *GamificationHandler) GetStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	status, err := h.gamification.GetStatus(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": status})
}

func (h *GamificationHandler) GetPointHistory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, offset := pagination(c, 20)

	logs, err := h.gamification.GetPointHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}

func pagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := strconv.Atoi(c.DefaultQuery("offset", "")); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}
