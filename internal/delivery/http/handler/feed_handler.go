package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/feed"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// Discover handles GET /discover?limit=&offset=
// @Summary Discover candidates
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} feed.Candidate
// @Failure 401 {object} ErrorResponse
// @Router /discover [get]
func (h *FeedHandler) Discover(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		badRequest(c, "invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		badRequest(c, "invalid offset")
		return
	}

	candidates, err := h.feedUseCase.Discover(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profiles": candidates,
		"count":    len(candidates),
	})
}
