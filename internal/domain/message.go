package domain

import "time"

// MessageReply is an answer embedded in a Message
type MessageReply struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsAdmin   bool      `json:"isAdmin"`
}

// Message is a guestbook entry
type Message struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Author    string         `json:"author"`
	Timestamp time.Time      `json:"timestamp"`
	Replies   []MessageReply `json:"replies"`
}

// EntityID returns the message id
func (m Message) EntityID() string { return m.ID }

// MessageInput holds the fields of a new message
type MessageInput struct {
	Author  string `json:"author" validate:"required,max=32"`
	Content string `json:"content" validate:"required,max=1000"`
}

// ReplyInput holds the fields of a new reply
type ReplyInput struct {
	Author  string `json:"author" validate:"required,max=32"`
	Content string `json:"content" validate:"required,max=1000"`
	IsAdmin bool   `json:"isAdmin"`
}
