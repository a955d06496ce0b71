package http

import (
	"log/slog"
	"net/http"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Feed    *handler.FeedHandler
	Swipe   *handler.SwipeHandler
	Match   *handler.MatchHandler
	Message *handler.MessageHandler
	Venue   *handler.VenueHandler
}

type Router struct {
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	log            *slog.Logger
	// uploadsDir is served under /uploads when photos live on local disk.
	uploadsDir string
}

func NewRouter(handlers Handlers, authMiddleware *middleware.AuthMiddleware, log *slog.Logger, uploadsDir string) *Router {
	return &Router{
		handlers:       handlers,
		authMiddleware: authMiddleware,
		log:            log,
		uploadsDir:     uploadsDir,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.logErrors())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if r.uploadsDir != "" {
		router.Static("/uploads", r.uploadsDir)
	}

	h := r.handlers

	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/me", h.Auth.Me)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		v1.POST("/profile", h.Profile.CreateProfile)
		me := v1.Group("/profile/me")
		{
			me.GET("", h.Profile.GetMyProfile)
			me.PUT("", h.Profile.UpdateMyProfile)
			me.DELETE("", h.Profile.DeleteMyProfile)
			me.PUT("/location", h.Profile.UpdateLocation)
			me.POST("/pause", h.Profile.SetPaused)
			me.GET("/deal-breakers", h.Profile.GetDealBreakers)
			me.PUT("/deal-breakers", h.Profile.UpdateDealBreakers)
			me.POST("/photos/main", h.Profile.UploadMainPhoto)
			me.POST("/photos/gallery/:slot", h.Profile.UploadGalleryPhoto)
			me.DELETE("/photos", h.Profile.DeletePhoto)
		}

		v1.GET("/discover", h.Feed.Discover)

		swipes := v1.Group("/swipes/:user_id")
		{
			swipes.POST("/like", h.Swipe.Like)
			swipes.POST("/pass", h.Swipe.Pass)
		}

		users := v1.Group("/users/:user_id")
		{
			users.POST("/block", h.Match.Block)
			users.POST("/report", h.Match.Report)
		}

		v1.GET("/conversations", h.Match.ListConversations)
		matches := v1.Group("/matches")
		{
			matches.GET("", h.Match.ListMatches)
			matches.DELETE("/:id", h.Match.Unmatch)
			matches.GET("/:id/messages", h.Message.GetMessages)
			matches.POST("/:id/messages", h.Message.SendMessage)
			matches.GET("/:id/message-limit", h.Message.GetMessageLimit)
			matches.GET("/:id/stream", h.Message.Stream)
			matches.GET("/:id/venues", h.Venue.RecommendVenues)
			matches.POST("/:id/date-suggestions", h.Venue.SubmitDateSuggestion)
			matches.GET("/:id/date-suggestions/latest", h.Venue.LatestDateSuggestion)
		}

		v1.POST("/venues/:id/select", h.Venue.SelectVenue)
		v1.POST("/date-suggestions/:id/respond", h.Venue.RespondToDateSuggestion)
	}

	return router
}

// logErrors logs the errors handlers attached with c.Error.
func (r *Router) logErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, err := range c.Errors {
			r.log.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", c.Writer.Status(),
				"error", err.Err,
			)
		}
	}
}
