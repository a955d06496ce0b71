package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

// maxPhotoBytes bounds a single photo upload.
const maxPhotoBytes = 10 << 20

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfileRequest represents the onboarding payload
type CreateProfileRequest struct {
	Email string `json:"email"`
	profile.ProfileRequest
}

// CreateProfile handles POST /profile
// @Summary Complete onboarding
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest true "Profile data"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.profileUseCase.CreateProfile(c.Request.Context(), middleware.UserID(c), req.Email, &req.ProfileRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /profile/me
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var req profile.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.profileUseCase.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateLocation handles PUT /profile/me/location
func (h *ProfileHandler) UpdateLocation(c *gin.Context) {
	var req profile.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.profileUseCase.UpdateLocation(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PauseRequest toggles discovery visibility
type PauseRequest struct {
	Paused bool `json:"paused"`
}

// SetPaused handles POST /profile/me/pause
func (h *ProfileHandler) SetPaused(c *gin.Context) {
	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.profileUseCase.SetPaused(c.Request.Context(), middleware.UserID(c), req.Paused)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteMyProfile handles DELETE /profile/me
func (h *ProfileHandler) DeleteMyProfile(c *gin.Context) {
	if err := h.profileUseCase.DeleteProfile(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "profile deleted"})
}

// GetDealBreakers handles GET /profile/me/deal-breakers
func (h *ProfileHandler) GetDealBreakers(c *gin.Context) {
	d, err := h.profileUseCase.GetDealBreakers(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateDealBreakers handles PUT /profile/me/deal-breakers
func (h *ProfileHandler) UpdateDealBreakers(c *gin.Context) {
	var req profile.DealBreakersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	d, err := h.profileUseCase.UpdateDealBreakers(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UploadMainPhoto handles POST /profile/me/photos/main (multipart field "photo")
func (h *ProfileHandler) UploadMainPhoto(c *gin.Context) {
	file, contentType, ok := photoFile(c)
	if !ok {
		return
	}
	defer file.Close()

	p, err := h.profileUseCase.UploadMainPhoto(c.Request.Context(), middleware.UserID(c), file, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadGalleryPhoto handles POST /profile/me/photos/gallery/:slot
func (h *ProfileHandler) UploadGalleryPhoto(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		badRequest(c, "invalid slot")
		return
	}

	file, contentType, ok := photoFile(c)
	if !ok {
		return
	}
	defer file.Close()

	p, err := h.profileUseCase.UploadGalleryPhoto(c.Request.Context(), middleware.UserID(c), slot, file, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePhotoRequest names the photo to remove
type DeletePhotoRequest struct {
	URL string `json:"url" binding:"required"`
}

// DeletePhoto handles DELETE /profile/me/photos
func (h *ProfileHandler) DeletePhoto(c *gin.Context) {
	var req DeletePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "url is required")
		return
	}

	p, err := h.profileUseCase.DeletePhoto(c.Request.Context(), middleware.UserID(c), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
