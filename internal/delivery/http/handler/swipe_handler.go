package handler

import (
	"context"
	"net/http"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// Like handles POST /swipes/:user_id/like
// @Summary Like a profile
// @Description Records a like and forms a match when the like is mutual
// @Tags swipe
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "Target user ID"
// @Success 200 {object} swipe.SwipeResult
// @Failure 403 {object} ErrorResponse "match limit reached"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /swipes/{user_id}/like [post]
func (h *SwipeHandler) Like(c *gin.Context) {
	h.swipe(c, h.swipeUseCase.SwipeRight)
}

// Pass handles POST /swipes/:user_id/pass
func (h *SwipeHandler) Pass(c *gin.Context) {
	h.swipe(c, h.swipeUseCase.SwipeLeft)
}

type swipeFunc func(ctx context.Context, swiperID, swipedID string) (*swipe.SwipeResult, error)

func (h *SwipeHandler) swipe(c *gin.Context, fn swipeFunc) {
	targetID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), middleware.UserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
