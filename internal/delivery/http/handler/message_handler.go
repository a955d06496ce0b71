package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/message"
	"github.com/gin-gonic/gin"
)

const streamHeartbeat = 25 * time.Second

type MessageHandler struct {
	messageUseCase *message.MessageUseCase
}

func NewMessageHandler(messageUseCase *message.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

// SendMessageRequest represents a new chat message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage handles POST /matches/:id/messages
// @Summary Send a message
// @Description Until the other user replies only a few messages per day are allowed
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param X-Timezone header string false "IANA time zone of the sender"
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} message.SendResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "daily limit reached"
// @Router /matches/{id}/messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	loc, ok := location(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.messageUseCase.SendMessage(c.Request.Context(), middleware.UserID(c), matchID, req.Content, loc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetMessages handles GET /matches/:id/messages?since=RFC3339
func (h *MessageHandler) GetMessages(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	loc, ok := location(c)
	if !ok {
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			badRequest(c, "since must be an RFC 3339 timestamp")
			return
		}
		since = &t
	}

	conversation, err := h.messageUseCase.GetMessages(c.Request.Context(), middleware.UserID(c), matchID, since, loc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// GetMessageLimit handles GET /matches/:id/message-limit
func (h *MessageHandler) GetMessageLimit(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}
	loc, ok := location(c)
	if !ok {
		return
	}

	limit, err := h.messageUseCase.CheckMessageLimit(c.Request.Context(), middleware.UserID(c), matchID, loc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, limit)
}

// Stream handles GET /matches/:id/stream as server-sent events
func (h *MessageHandler) Stream(c *gin.Context) {
	matchID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sub, err := h.messageUseCase.Subscribe(ctx, middleware.UserID(c), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer sub.Close()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-sub.Messages():
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
