package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/unimatch/campus-platform/internal/middleware"
	"github.com/unimatch/campus-platform/internal/services"
	"github.com/unimatch/campus-platform/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: check against APP_URL once the frontend host is fixed
	},
}

type WebSocketHandler struct {
	hub                 *ws.Hub
	conversationService *services.ConversationService
}

func NewWebSocketHandler(hub *ws.Hub, conversationService *services.ConversationService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, conversationService: conversationService}
}

// Subscribe upgrades the connection and streams events for one
// conversation. Only participants may subscribe.
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conversationID, err := uuid.Parse(c.Query("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id required"})
		return
	}

	if _, err := h.conversationService.Get(conversationID, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant in this conversation"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error
		return
	}

	client := ws.NewClient(h.hub, conn, userID.String(), conversationID.String())
	client.Start()
}
