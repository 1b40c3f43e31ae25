package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"messenger-service/internal/models"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepository abstracts chat persistence.
type ChatRepository interface {
	ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error)
	CreateOrGetDirect(ctx context.Context, userID int, contactID int) (int, error)
	Block(ctx context.Context, chatID int, userID int) error
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// ListForUser returns one summary row per non-blocked chat of the user:
// display fields resolved from the chat itself (groups) or the counterpart
// profile, the latest message preview and the count of unread messages from
// other senders. Chats with no messages sort last.
func (r *ChatRepo) ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	query := `SELECT DISTINCT ON (c.id)
            c.id,
            CASE WHEN c.is_group THEN c.name ELSE u.name END AS chat_name,
            CASE WHEN c.is_group THEN c.avatar_url ELSE u.avatar_url END AS avatar,
            u.is_online,
            lm.text AS last_message,
            lm.created_at AS last_sent_at,
            COALESCE(un.cnt, 0) AS unread_count
        FROM chats c
        INNER JOIN chat_participants cp ON cp.chat_id = c.id
        LEFT JOIN chat_participants cp2 ON cp2.chat_id = c.id AND cp2.user_id <> $1
        LEFT JOIN users u ON u.id = cp2.user_id
        LEFT JOIN LATERAL (
            SELECT m.text, m.created_at FROM messages m
            WHERE m.chat_id = c.id
            ORDER BY m.created_at DESC LIMIT 1
        ) lm ON TRUE
        LEFT JOIN (
            SELECT chat_id, COUNT(*) AS cnt FROM messages
            WHERE is_read = FALSE AND sender_id <> $1
            GROUP BY chat_id
        ) un ON un.chat_id = c.id
        WHERE cp.user_id = $1 AND cp.is_blocked = FALSE
        ORDER BY c.id, lm.created_at DESC NULLS LAST`

	var summaries []models.ChatSummary
	err := r.db.SelectContext(ctx, &summaries, query, userID)
	return summaries, err
}

// CreateOrGetDirect finds the 1:1 chat between two users or creates it. The
// participant pair is unordered; direct_key holds the sorted pair so the
// unique index resolves concurrent creations to a single chat.
func (r *ChatRepo) CreateOrGetDirect(ctx context.Context, userID int, contactID int) (int, error) {
	ctx, span := otel.Tracer("messenger/repositories").Start(ctx, "chat.create_or_get")
	defer span.End()

	chatID, err := r.findDirect(ctx, userID, contactID)
	if err == nil {
		return chatID, nil
	}
	if !errors.Is(err, ErrChatNotFound) {
		return 0, err
	}

	chatID, err = r.insertDirect(ctx, userID, contactID)
	if err == nil {
		return chatID, nil
	}
	if !isUniqueViolation(err) {
		return 0, err
	}

	// A concurrent request created the chat first.
	return r.findDirect(ctx, userID, contactID)
}

func (r *ChatRepo) findDirect(ctx context.Context, userID int, contactID int) (int, error) {
	var chatID int
	query := `SELECT c.id FROM chats c
        INNER JOIN chat_participants a ON a.chat_id = c.id AND a.user_id = $1
        INNER JOIN chat_participants b ON b.chat_id = c.id AND b.user_id = $2
        WHERE c.is_group = FALSE`
	err := r.db.GetContext(ctx, &chatID, query, userID, contactID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrChatNotFound
	}
	return chatID, err
}

func (r *ChatRepo) insertDirect(ctx context.Context, userID int, contactID int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var chatID int
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO chats (is_group, direct_key) VALUES (FALSE, $1) RETURNING id`,
		directKey(userID, contactID)).Scan(&chatID); err != nil {
		return 0, err
	}
	for _, participant := range []int{userID, contactID} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_participants (chat_id, user_id) VALUES ($1, $2)`,
			chatID, participant); err != nil {
			return 0, err
		}
	}

	return chatID, tx.Commit()
}

// Block flags the user's own participant row; the other side is unaffected.
func (r *ChatRepo) Block(ctx context.Context, chatID int, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE chat_participants SET is_blocked = TRUE WHERE chat_id=$1 AND user_id=$2`,
		chatID, userID)
	return err
}

func directKey(userID int, contactID int) string {
	if contactID < userID {
		userID, contactID = contactID, userID
	}
	return fmt.Sprintf("%d:%d", userID, contactID)
}
