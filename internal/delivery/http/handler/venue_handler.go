package handler

import (
	"net/http"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/venue"
	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venueUseCase *venue.VenueUseCase
}

func NewVenueHandler(venueUseCase *venue.VenueUseCase) *VenueHandler {
	return &VenueHandler{
		venueUseCase: venueUseCase,
	}
}

// RecommendVenues handles GET /matches/:id/venues?category=
// @Summary Recommend venues for a date
// @Tags venues
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match ID"
// @Param category query string false "Venue category"
// @Success 200 {array} venue.RankedVenue
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "location missing"
// @Router /matches/{id}/venues [get]
func (h *VenueHandler) RecommendVenues(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}

	venues, err := h.venueUseCase.RecommendVenues(c.Request.Context(), middleware.UserID(c), matchID, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

// SelectVenue handles POST /venues/:id/select
func (h *VenueHandler) SelectVenue(c *gin.Context) {
	venueID, ok := idParam(c, "id")
	if !ok {
		return
	}

	v, err := h.venueUseCase.SelectVenue(c.Request.Context(), middleware.UserID(c), venueID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DateSuggestionRequest names the proposed venue
type DateSuggestionRequest struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`
}

// SubmitDateSuggestion handles POST /matches/:id/date-suggestions
func (h *VenueHandler) SubmitDateSuggestion(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req DateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "venue_id is required")
		return
	}

	suggestion, err := h.venueUseCase.SubmitDateSuggestion(c.Request.Context(), middleware.UserID(c), matchID, req.VenueID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, suggestion)
}

// LatestDateSuggestion handles GET /matches/:id/date-suggestions/latest
func (h *VenueHandler) LatestDateSuggestion(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}

	suggestion, err := h.venueUseCase.LatestDateSuggestion(c.Request.Context(), middleware.UserID(c), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// RespondRequest answers a date suggestion
type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// RespondToDateSuggestion handles POST /date-suggestions/:id/respond
func (h *VenueHandler) RespondToDateSuggestion(c *gin.Context) {
	suggestionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "accept is required")
		return
	}

	suggestion, err := h.venueUseCase.RespondToDateSuggestion(c.Request.Context(), middleware.UserID(c), suggestionID, *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
