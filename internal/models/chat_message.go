package models

import "time"

// Chat message senders
const (
	ChatSenderUser    = "user"
	ChatSenderSupport = "support"
)

// ChatMessage is one message in a learner's support thread
type ChatMessage struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChatMessageRequest is the payload for posting a chat message
type CreateChatMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}
