package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/models"
	"messenger-service/internal/observability"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// MessageHandler manages the message history endpoints.
type MessageHandler struct {
	messages repositories.MessageRepository
	audit    *telemetry.AuditEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages repositories.MessageRepository, audit *telemetry.AuditEmitter) *MessageHandler {
	return &MessageHandler{messages: messages, audit: audit}
}

// List handles GET /messages?chatId=: the full ordered history annotated from
// the caller's perspective. As a side effect, messages from other senders are
// marked read; the returned statuses still reflect the pre-call state.
func (h *MessageHandler) List(c *gin.Context) {
	chatIDParam := c.Query("chatId")
	if chatIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chatId required"})
		return
	}
	chatID, err := strconv.Atoi(chatIDParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	userID := c.GetInt("userID")
	msgs, err := h.messages.ListByChat(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		views = append(views, msg.View(userID))
	}

	if err := h.messages.MarkIncomingRead(c.Request.Context(), chatID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}

type sendMessageRequest struct {
	ChatID         string `json:"chatId"`
	Text           string `json:"text"`
	AttachmentType string `json:"attachmentType"`
	AttachmentURL  string `json:"attachmentUrl"`
	AttachmentName string `json:"attachmentName"`
}

// Send handles POST /messages: appends a message attributed to the caller.
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ChatID == "" || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chatId and text required"})
		return
	}
	chatID, err := strconv.Atoi(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	var attachment *models.Attachment
	if req.AttachmentType != "" {
		attachment = &models.Attachment{
			Type: req.AttachmentType,
			URL:  req.AttachmentURL,
			Name: req.AttachmentName,
		}
	}

	userID := c.GetInt("userID")
	msg, err := h.messages.Create(c.Request.Context(), chatID, userID, req.Text, attachment)
	if err != nil {
		emitAudit(c, h.audit, "ERROR", "message store failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	observability.IncMessageSent()
	emitAudit(c, h.audit, "INFO", "message sent")

	c.JSON(http.StatusOK, gin.H{"message": msg.View(userID)})
}
