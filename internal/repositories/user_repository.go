package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"messenger-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, phone, name, bio, avatar_url, google_id, telegram_id, is_online, last_seen`

// UserRepository abstracts user identity persistence.
type UserRepository interface {
	FindOrCreateByGoogle(ctx context.Context, googleID string, candidate models.User) (models.User, bool, error)
	FindOrCreateByTelegram(ctx context.Context, telegramID string, candidate models.User) (models.User, bool, error)
	FindOrCreateByPhone(ctx context.Context, phone string, candidate models.User) (models.User, bool, error)
	FindByPhone(ctx context.Context, phone string) (models.User, error)
	MarkOnline(ctx context.Context, userID int) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindOrCreateByGoogle resolves a user by Google id, inserting the candidate
// on first login. The unique index on google_id is the race backstop: a
// concurrent first login loses the insert and falls back to the winner's row.
func (r *UserRepo) FindOrCreateByGoogle(ctx context.Context, googleID string, candidate models.User) (models.User, bool, error) {
	return r.findOrCreate(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id=$1`, googleID,
		`INSERT INTO users (phone, name, avatar_url, google_id) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		candidate.Phone, candidate.Name, candidate.AvatarURL, googleID)
}

// FindOrCreateByTelegram resolves a user by Telegram id, inserting on miss.
func (r *UserRepo) FindOrCreateByTelegram(ctx context.Context, telegramID string, candidate models.User) (models.User, bool, error) {
	return r.findOrCreate(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id=$1`, telegramID,
		`INSERT INTO users (phone, name, avatar_url, telegram_id) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		candidate.Phone, candidate.Name, candidate.AvatarURL, telegramID)
}

// FindOrCreateByPhone resolves a user by phone number, inserting on miss.
func (r *UserRepo) FindOrCreateByPhone(ctx context.Context, phone string, candidate models.User) (models.User, bool, error) {
	return r.findOrCreate(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone=$1`, phone,
		`INSERT INTO users (phone, name) VALUES ($1, $2) RETURNING `+userColumns,
		phone, candidate.Name)
}

func (r *UserRepo) findOrCreate(ctx context.Context, selectQuery string, key string, insertQuery string, insertArgs ...interface{}) (models.User, bool, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, selectQuery, key)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, err
	}

	err = r.db.GetContext(ctx, &user, insertQuery, insertArgs...)
	if err == nil {
		return user, true, nil
	}
	if !isUniqueViolation(err) {
		return models.User{}, false, err
	}

	// Lost the insert race: the row exists now.
	if err := r.db.GetContext(ctx, &user, selectQuery, key); err != nil {
		return models.User{}, false, err
	}
	return user, false, nil
}

// FindByPhone looks up a user by display phone.
func (r *UserRepo) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE phone=$1`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// MarkOnline flags the user online and refreshes last_seen.
func (r *UserRepo) MarkOnline(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET is_online = TRUE, last_seen = NOW() WHERE id=$1`, userID)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
