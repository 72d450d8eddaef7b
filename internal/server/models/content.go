package models

import "time"

type Album struct {
	ID          int64
	UserID      int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

type Photo struct {
	ID          int64
	AlbumID     int64
	UserID      int64
	URL         string
	Description *string
	CreatedAt   time.Time
}

// MessageType values accepted by the messages API.
const (
	MessageTypeText    = "text"
	MessageTypeSticker = "sticker"
	MessageTypeImage   = "image"
)

type Message struct {
	ID        int64
	UserID    int64
	Content   string
	Type      string
	IsHidden  bool
	CreatedAt time.Time
}

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type Event struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string
	Date        time.Time
	Type        string
	CreatedAt   time.Time
}

// ModerationAction is what an administrator does to a reported message.
type ModerationAction string

const (
	ModerationHide   ModerationAction = "hide"
	ModerationDelete ModerationAction = "delete"
)
