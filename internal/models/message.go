package models

import (
	"database/sql"
	"strconv"
	"time"
)

// clockFormat is the wall-clock form used for message and preview timestamps.
const clockFormat = "15:04"

// Message statuses as exposed by the API. "read" reflects the global is_read
// flag, which is only unambiguous for two-participant chats.
const (
	StatusSent = "sent"
	StatusRead = "read"
)

// Message is a stored chat message. The attachment columns are a nullable
// trio; a message either has all three or none.
type Message struct {
	ID             int            `db:"id" json:"id"`
	ChatID         int            `db:"chat_id" json:"chat_id"`
	SenderID       int            `db:"sender_id" json:"sender_id"`
	Text           string         `db:"text" json:"text"`
	IsRead         bool           `db:"is_read" json:"is_read"`
	AttachmentType sql.NullString `db:"attachment_type" json:"-"`
	AttachmentURL  sql.NullString `db:"attachment_url" json:"-"`
	AttachmentName sql.NullString `db:"attachment_name" json:"-"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// Attachment is the optional sub-object on an API message.
type Attachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// MessageView is the JSON shape of a history row.
type MessageView struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Timestamp  string      `json:"timestamp"`
	IsSent     bool        `json:"isSent"`
	Status     string      `json:"status"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// View formats a message for the API from the perspective of viewerID.
func (m Message) View(viewerID int) MessageView {
	status := StatusSent
	if m.IsRead {
		status = StatusRead
	}
	view := MessageView{
		ID:        strconv.Itoa(m.ID),
		Text:      m.Text,
		Timestamp: m.CreatedAt.Format(clockFormat),
		IsSent:    m.SenderID == viewerID,
		Status:    status,
	}
	if m.AttachmentType.Valid && m.AttachmentType.String != "" {
		view.Attachment = &Attachment{
			Type: m.AttachmentType.String,
			URL:  m.AttachmentURL.String,
			Name: m.AttachmentName.String,
		}
	}
	return view
}
