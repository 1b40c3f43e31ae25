package models

import (
	"database/sql"
	"time"
)

// User is an account resolved from any of the supported identity providers.
// Phone doubles as the universal display identifier: federated logins without
// a phone store their email or username there.
type User struct {
	ID         int            `db:"id" json:"id"`
	Phone      string         `db:"phone" json:"phone"`
	Name       string         `db:"name" json:"name"`
	Bio        string         `db:"bio" json:"bio"`
	AvatarURL  string         `db:"avatar_url" json:"avatar"`
	GoogleID   sql.NullString `db:"google_id" json:"-"`
	TelegramID sql.NullString `db:"telegram_id" json:"-"`
	IsOnline   bool           `db:"is_online" json:"-"`
	LastSeen   time.Time      `db:"last_seen" json:"-"`
}

// Profile is the public shape returned by the auth endpoint.
type Profile struct {
	ID     int    `json:"id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// Profile projects the API view of a user.
func (u User) Profile() Profile {
	return Profile{
		ID:     u.ID,
		Phone:  u.Phone,
		Name:   u.Name,
		Bio:    u.Bio,
		Avatar: u.AvatarURL,
	}
}
