package repositories

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"messenger-service/internal/models"
)

const messageColumns = `id, chat_id, sender_id, text, is_read, attachment_type, attachment_url, attachment_name, created_at`

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	ListByChat(ctx context.Context, chatID int) ([]models.Message, error)
	MarkIncomingRead(ctx context.Context, chatID int, readerID int) error
	Create(ctx context.Context, chatID int, senderID int, text string, attachment *models.Attachment) (models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListByChat returns the full message history of a chat, oldest first.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages WHERE chat_id=$1 ORDER BY created_at ASC`, chatID)
	return msgs, err
}

// MarkIncomingRead marks messages from other senders as read. The reader's
// own messages are never touched.
func (r *MessageRepo) MarkIncomingRead(ctx context.Context, chatID int, readerID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE WHERE chat_id=$1 AND sender_id<>$2 AND is_read = FALSE`,
		chatID, readerID)
	return err
}

// Create stores a message with an optional attachment triple.
func (r *MessageRepo) Create(ctx context.Context, chatID int, senderID int, text string, attachment *models.Attachment) (models.Message, error) {
	var attachmentType, attachmentURL, attachmentName sql.NullString
	if attachment != nil {
		attachmentType = sql.NullString{String: attachment.Type, Valid: true}
		attachmentURL = sql.NullString{String: attachment.URL, Valid: true}
		attachmentName = sql.NullString{String: attachment.Name, Valid: true}
	}

	var msg models.Message
	err := r.db.GetContext(ctx, &msg,
		`INSERT INTO messages (chat_id, sender_id, text, attachment_type, attachment_url, attachment_name)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+messageColumns,
		chatID, senderID, text, attachmentType, attachmentURL, attachmentName)
	return msg, err
}
