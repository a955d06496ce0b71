package handler

import (
	"net/http"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// ListMatches handles GET /matches
func (h *MatchHandler) ListMatches(c *gin.Context) {
	matches, err := h.matchUseCase.ListMatches(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// ListConversations handles GET /conversations
func (h *MatchHandler) ListConversations(c *gin.Context) {
	conversations, err := h.matchUseCase.ListConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// Unmatch handles DELETE /matches/:id
func (h *MatchHandler) Unmatch(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.matchUseCase.Unmatch(c.Request.Context(), middleware.UserID(c), matchID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "unmatched"})
}

// Block handles POST /users/:user_id/block
func (h *MatchHandler) Block(c *gin.Context) {
	targetID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if err := h.matchUseCase.Block(c.Request.Context(), middleware.UserID(c), targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user blocked"})
}

// Report handles POST /users/:user_id/report
func (h *MatchHandler) Report(c *gin.Context) {
	targetID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	var req match.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "reason is required")
		return
	}

	report, err := h.matchUseCase.Report(c.Request.Context(), middleware.UserID(c), targetID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}
