package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness-backend/internal/model"
	"wellness-backend/internal/service"
	"wellness-backend/internal/utils"
	"wellness-backend/pkg/logger"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// StreamChat answers a wellness question as a server-sent event stream. The
// full response is generated and parsed before the first frame is written, so
// a failing request gets a single JSON error instead of a truncated stream.
func (h *ChatHandler) StreamChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	events, err := h.chatService.StreamChat(ctx, req)
	if err != nil {
		logger.Errorf("Error in chat stream: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Error generating response: %v", err),
		})
		return
	}

	sseWriter := utils.NewSSEWriter(c.Writer)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sseWriter.WriteEvent(ev); err != nil {
				logger.Warnf("Failed to write SSE frame: %v", err)
				return
			}
		case <-ctx.Done():
			// Client went away; the emitter sees the same context and
			// stops producing.
			return
		}
	}
}
