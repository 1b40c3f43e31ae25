package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/models"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// Chat list POST actions.
const (
	ActionCreate = "create"
	ActionBlock  = "block"
)

// ChatHandler manages the chat list endpoints.
type ChatHandler struct {
	chats repositories.ChatRepository
	users repositories.UserRepository
	audit *telemetry.AuditEmitter
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chats repositories.ChatRepository, users repositories.UserRepository, audit *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{chats: chats, users: users, audit: audit}
}

// List handles GET /chats: one row per non-blocked chat of the caller.
func (h *ChatHandler) List(c *gin.Context) {
	userID := c.GetInt("userID")

	summaries, err := h.chats.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chats"})
		return
	}

	views := make([]models.ChatView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, summary.View())
	}

	c.JSON(http.StatusOK, gin.H{"chats": views})
}

type chatActionRequest struct {
	Action string `json:"action" binding:"required"`
	Phone  string `json:"phone"`
	ChatID string `json:"chatId"`
}

// Action handles POST /chats, dispatching on the action field.
func (h *ChatHandler) Action(c *gin.Context) {
	var req chatActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.Action {
	case ActionCreate:
		h.create(c, req)
	case ActionBlock:
		h.block(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported action"})
	}
}

// create finds or creates the 1:1 chat with the user owning the given phone.
func (h *ChatHandler) create(c *gin.Context, req chatActionRequest) {
	if req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone required"})
		return
	}

	userID := c.GetInt("userID")
	contact, err := h.users.FindByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up contact"})
		return
	}

	chatID, err := h.chats.CreateOrGetDirect(c.Request.Context(), userID, contact.ID)
	if err != nil {
		emitAudit(c, h.audit, "ERROR", "chat creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create chat"})
		return
	}

	emitAudit(c, h.audit, "INFO", "chat created")
	c.JSON(http.StatusOK, gin.H{
		"chatId": strconv.Itoa(chatID),
		"contact": models.Contact{
			ID:     contact.ID,
			Name:   contact.Name,
			Avatar: contact.AvatarURL,
		},
	})
}

// block flags the caller's participant row for the chat.
func (h *ChatHandler) block(c *gin.Context, req chatActionRequest) {
	chatID, err := strconv.Atoi(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	userID := c.GetInt("userID")
	if err := h.chats.Block(c.Request.Context(), chatID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not block chat"})
		return
	}

	emitAudit(c, h.audit, "INFO", "chat blocked")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
