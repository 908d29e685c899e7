package services

import (
	"context"
	"fmt"

	"stockgyan-backend/internal/models"
)

type ChatMessageStore interface {
	Create(ctx context.Context, m *models.ChatMessage) error
	ListByUser(ctx context.Context, userID int, limit int) ([]*models.ChatMessage, error)
}

// ChatBroadcaster pushes a stored message to any live websocket subscribers.
// The hub implements it; a nil broadcaster means no live push.
type ChatBroadcaster interface {
	Broadcast(userID int, m *models.ChatMessage)
}

// ChatService persists support-chat messages and fans them out to live
// websocket connections
type ChatService struct {
	messages    ChatMessageStore
	broadcaster ChatBroadcaster
}

func NewChatService(messages ChatMessageStore, broadcaster ChatBroadcaster) *ChatService {
	return &ChatService{messages: messages, broadcaster: broadcaster}
}

func (s *ChatService) PostMessage(ctx context.Context, userID int, sender string, req *models.CreateChatMessageRequest) (*models.ChatMessage, error) {
	if ve := validatePayload(req); ve != nil {
		return nil, ve
	}
	if sender != models.ChatSenderUser && sender != models.ChatSenderSupport {
		return nil, &ValidationError{Fields: map[string]string{
			"sender": "must be user or support",
		}}
	}

	msg := &models.ChatMessage{
		UserID: userID,
		Sender: sender,
		Body:   req.Body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("storing chat message: %w", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(userID, msg)
	}
	return msg, nil
}

func (s *ChatService) History(ctx context.Context, userID int, limit int) ([]*models.ChatMessage, error) {
	return s.messages.ListByUser(ctx, userID, limit)
}
