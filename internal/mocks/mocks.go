package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messenger-service/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) FindOrCreateByGoogle(ctx context.Context, googleID string, candidate models.User) (models.User, bool, error) {
	args := m.Called(ctx, googleID, candidate)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *UserRepositoryMock) FindOrCreateByTelegram(ctx context.Context, telegramID string, candidate models.User) (models.User, bool, error) {
	args := m.Called(ctx, telegramID, candidate)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *UserRepositoryMock) FindOrCreateByPhone(ctx context.Context, phone string, candidate models.User) (models.User, bool, error) {
	args := m.Called(ctx, phone, candidate)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *UserRepositoryMock) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	args := m.Called(ctx, phone)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) MarkOnline(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.ChatSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatSummary)
	}
	return list, args.Error(1)
}

func (m *ChatRepositoryMock) CreateOrGetDirect(ctx context.Context, userID int, contactID int) (int, error) {
	args := m.Called(ctx, userID, contactID)
	return args.Int(0), args.Error(1)
}

func (m *ChatRepositoryMock) Block(ctx context.Context, chatID int, userID int) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) ListByChat(ctx context.Context, chatID int) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkIncomingRead(ctx context.Context, chatID int, readerID int) error {
	args := m.Called(ctx, chatID, readerID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) Create(ctx context.Context, chatID int, senderID int, text string, attachment *models.Attachment) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, text, attachment)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}
