package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/mocks"
	"messenger-service/internal/models"
	"messenger-service/internal/repositories"
)

func setupChatRouter(handler *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/chats", handler.List)
	r.POST("/chats", handler.Action)
	return r
}

func TestListChatsSuccess(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	handler := NewChatHandler(chats, new(mocks.UserRepositoryMock), nil)
	router := setupChatRouter(handler)

	sentAt := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	chats.On("ListForUser", mock.Anything, 1).Return([]models.ChatSummary{
		{
			ChatID:      3,
			Name:        sql.NullString{String: "Bob", Valid: true},
			IsOnline:    sql.NullBool{Bool: true, Valid: true},
			LastMessage: sql.NullString{String: "hi", Valid: true},
			LastSentAt:  sql.NullTime{Time: sentAt, Valid: true},
			Unread:      2,
		},
		{ChatID: 4},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Chats []models.ChatView `json:"chats"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Chats, 2)

	assert.Equal(t, "3", resp.Chats[0].ID)
	assert.Equal(t, "Bob", resp.Chats[0].Name)
	assert.True(t, resp.Chats[0].IsOnline)
	assert.Equal(t, "hi", resp.Chats[0].LastMessage)
	assert.Equal(t, "14:30", resp.Chats[0].Timestamp)
	assert.Equal(t, 2, resp.Chats[0].Unread)
	assert.False(t, resp.Chats[0].IsTyping)

	// Empty chat falls back to the placeholder name and empty preview.
	assert.Equal(t, "Unknown", resp.Chats[1].Name)
	assert.Equal(t, "", resp.Chats[1].LastMessage)
	assert.Equal(t, "", resp.Chats[1].Timestamp)
	assert.Equal(t, 0, resp.Chats[1].Unread)

	chats.AssertExpectations(t)
}

func TestListChatsRepoError(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	handler := NewChatHandler(chats, new(mocks.UserRepositoryMock), nil)
	router := setupChatRouter(handler)

	chats.On("ListForUser", mock.Anything, 1).Return(([]models.ChatSummary)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	chats.AssertExpectations(t)
}

func TestCreateChatSuccess(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewChatHandler(chats, users, nil)
	router := setupChatRouter(handler)

	users.On("FindByPhone", mock.Anything, "+2").
		Return(models.User{ID: 2, Phone: "+2", Name: "B"}, nil).Once()
	chats.On("CreateOrGetDirect", mock.Anything, 1, 2).Return(10, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"action":"create","phone":"+2"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ChatID  string         `json:"chatId"`
		Contact models.Contact `json:"contact"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "10", resp.ChatID)
	assert.Equal(t, 2, resp.Contact.ID)
	assert.Equal(t, "B", resp.Contact.Name)
	users.AssertExpectations(t)
	chats.AssertExpectations(t)
}

func TestCreateChatUnknownPhone(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	handler := NewChatHandler(new(mocks.ChatRepositoryMock), users, nil)
	router := setupChatRouter(handler)

	users.On("FindByPhone", mock.Anything, "+404").
		Return(models.User{}, repositories.ErrUserNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"action":"create","phone":"+404"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	users.AssertExpectations(t)
}

func TestCreateChatMissingPhone(t *testing.T) {
	handler := NewChatHandler(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock), nil)
	router := setupChatRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"action":"create"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlockChatSuccess(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	handler := NewChatHandler(chats, new(mocks.UserRepositoryMock), nil)
	router := setupChatRouter(handler)

	chats.On("Block", mock.Anything, 7, 1).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"action":"block","chatId":"7"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp["success"])
	chats.AssertExpectations(t)
}

func TestBlockChatInvalidID(t *testing.T) {
	handler := NewChatHandler(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock), nil)
	router := setupChatRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"action":"block","chatId":"abc"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatActionUnknown(t *testing.T) {
	handler := NewChatHandler(new(mocks.ChatRepositoryMock), new(mocks.UserRepositoryMock), nil)
	router := setupChatRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"action":"archive"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
