package models

import (
	"database/sql"
	"strconv"
	"time"
)

// DefaultChatName is shown when the counterpart profile has no name.
const DefaultChatName = "Unknown"

// Chat is a conversation. For 1:1 chats name/avatar come from the other
// participant; the chat's own fields are used only for groups.
type Chat struct {
	ID        int            `db:"id" json:"id"`
	IsGroup   bool           `db:"is_group" json:"is_group"`
	Name      sql.NullString `db:"name" json:"name"`
	AvatarURL sql.NullString `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Participant is a membership row. Blocking is one-sided: only the blocking
// user's row is flagged and only their chat list is affected.
type Participant struct {
	ChatID    int  `db:"chat_id" json:"chat_id"`
	UserID    int  `db:"user_id" json:"user_id"`
	IsBlocked bool `db:"is_blocked" json:"is_blocked"`
}

// ChatSummary is one row of the chat list: resolved display fields, the last
// message preview and the count of unread messages from other senders.
type ChatSummary struct {
	ChatID      int            `db:"id"`
	Name        sql.NullString `db:"chat_name"`
	AvatarURL   sql.NullString `db:"avatar"`
	IsOnline    sql.NullBool   `db:"is_online"`
	LastMessage sql.NullString `db:"last_message"`
	LastSentAt  sql.NullTime   `db:"last_sent_at"`
	Unread      int            `db:"unread_count"`
}

// ChatView is the JSON shape of a chat list row.
type ChatView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	IsOnline    bool   `json:"isOnline"`
	LastMessage string `json:"lastMessage"`
	Timestamp   string `json:"timestamp"`
	Unread      int    `json:"unread"`
	IsTyping    bool   `json:"isTyping"`
}

// Contact is the counterpart profile returned when a chat is created.
type Contact struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// View formats a summary row for the API, applying display fallbacks.
func (s ChatSummary) View() ChatView {
	name := s.Name.String
	if name == "" {
		name = DefaultChatName
	}
	view := ChatView{
		ID:          strconv.Itoa(s.ChatID),
		Name:        name,
		Avatar:      s.AvatarURL.String,
		IsOnline:    s.IsOnline.Valid && s.IsOnline.Bool,
		LastMessage: s.LastMessage.String,
		Unread:      s.Unread,
	}
	if s.LastSentAt.Valid {
		view.Timestamp = s.LastSentAt.Time.Format(clockFormat)
	}
	return view
}
