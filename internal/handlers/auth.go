package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/auth"
	"messenger-service/internal/models"
	"messenger-service/internal/observability"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// Supported identity providers.
const (
	ProviderGoogle   = "google"
	ProviderTelegram = "telegram"
	ProviderPhone    = "phone"
)

// AuthHandler resolves identity claims into user accounts.
type AuthHandler struct {
	users  repositories.UserRepository
	tokens auth.TokenService
	audit  *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users repositories.UserRepository, tokens auth.TokenService, audit *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, audit: audit}
}

// authRequest is the tagged claim variant: type selects which provider
// fields are meaningful.
type authRequest struct {
	Type string `json:"type" binding:"required"`

	// google
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`

	// telegram
	TelegramID string `json:"telegram_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	PhotoURL   string `json:"photo_url"`

	// shared
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// Authenticate handles POST /auth: looks up or creates the user for the
// claimed identity, marks them online and returns the profile with a token.
// Existing users are returned unchanged; claim fields only seed new rows.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var (
		user    models.User
		created bool
		err     error
	)

	switch req.Type {
	case ProviderGoogle:
		if req.GoogleID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "google_id required"})
			return
		}
		candidate := models.User{
			Phone:     fallback(req.Phone, req.Email),
			Name:      req.Name,
			AvatarURL: req.Avatar,
			GoogleID:  sql.NullString{String: req.GoogleID, Valid: true},
		}
		user, created, err = h.users.FindOrCreateByGoogle(c.Request.Context(), req.GoogleID, candidate)

	case ProviderTelegram:
		if req.TelegramID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id required"})
			return
		}
		candidate := models.User{
			Phone:      fallback(req.Phone, req.Username),
			Name:       fallback(req.FirstName, req.Username),
			AvatarURL:  req.PhotoURL,
			TelegramID: sql.NullString{String: req.TelegramID, Valid: true},
		}
		user, created, err = h.users.FindOrCreateByTelegram(c.Request.Context(), req.TelegramID, candidate)

	case ProviderPhone:
		if req.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone required"})
			return
		}
		candidate := models.User{Phone: req.Phone, Name: req.Name}
		user, created, err = h.users.FindOrCreateByPhone(c.Request.Context(), req.Phone, candidate)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported auth type"})
		return
	}

	if err != nil {
		emitAudit(c, h.audit, "ERROR", "identity resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve identity"})
		return
	}

	if err := h.users.MarkOnline(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update presence"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	observability.IncAuthLogin(req.Type, created)
	c.Set("userID", user.ID)
	emitAudit(c, h.audit, "INFO", "user authenticated via "+req.Type)

	c.JSON(http.StatusOK, gin.H{"user": user.Profile(), "token": token})
}

func fallback(value, alternative string) string {
	if value != "" {
		return value
	}
	return alternative
}
