package services

import (
	"context"
	"testing"

	"stockgyan-backend/internal/models"
)

type fakeQuizStore struct {
	created []*models.QuizAttempt
}

func (s *fakeQuizStore) Create(_ context.Context, a *models.QuizAttempt) error {
	a.ID = len(s.created) + 1
	s.created = append(s.created, a)
	return nil
}

func (s *fakeQuizStore) ListByUser(_ context.Context, userID int) ([]*models.QuizAttempt, error) {
	var out []*models.QuizAttempt
	for _, a := range s.created {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestRecordAttempt(t *testing.T) {
	store := &fakeQuizStore{}
	svc := NewQuizService(store)

	attempt, err := svc.RecordAttempt(context.Background(), 7, &models.CreateQuizAttemptRequest{
		QuizSlug:       "candlesticks-basics",
		Score:          8,
		TotalQuestions: 10,
	})
	if err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if attempt.UserID != 7 || attempt.ID == 0 {
		t.Errorf("attempt not stored under user: %+v", attempt)
	}
}

func TestRecordAttemptValidation(t *testing.T) {
	svc := NewQuizService(&fakeQuizStore{})

	tests := []struct {
		name string
		req  *models.CreateQuizAttemptRequest
	}{
		{"missing slug", &models.CreateQuizAttemptRequest{Score: 5, TotalQuestions: 10}},
		{"zero questions", &models.CreateQuizAttemptRequest{QuizSlug: "x", Score: 0, TotalQuestions: 0}},
		{"score over total", &models.CreateQuizAttemptRequest{QuizSlug: "x", Score: 11, TotalQuestions: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAttempt(context.Background(), 7, tt.req)
			if _, ok := AsValidationError(err); !ok {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

type fakeChatStore struct {
	created []*models.ChatMessage
}

func (s *fakeChatStore) Create(_ context.Context, m *models.ChatMessage) error {
	m.ID = len(s.created) + 1
	s.created = append(s.created, m)
	return nil
}

func (s *fakeChatStore) ListByUser(_ context.Context, userID, limit int) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, m := range s.created {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type recordingBroadcaster struct {
	calls []*models.ChatMessage
}

func (b *recordingBroadcaster) Broadcast(_ int, m *models.ChatMessage) {
	b.calls = append(b.calls, m)
}

func TestPostMessageBroadcasts(t *testing.T) {
	store := &fakeChatStore{}
	bc := &recordingBroadcaster{}
	svc := NewChatService(store, bc)

	msg, err := svc.PostMessage(context.Background(), 7, models.ChatSenderUser, &models.CreateChatMessageRequest{
		Body: "What is a stop loss?",
	})
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if len(bc.calls) != 1 || bc.calls[0].ID != msg.ID {
		t.Errorf("stored message not broadcast: %+v", bc.calls)
	}
}

func TestPostMessageRejectsUnknownSender(t *testing.T) {
	svc := NewChatService(&fakeChatStore{}, nil)

	_, err := svc.PostMessage(context.Background(), 7, "bot", &models.CreateChatMessageRequest{Body: "hi"})
	if _, ok := AsValidationError(err); !ok {
		t.Errorf("expected validation error for unknown sender, got %v", err)
	}
}

func TestPostMessageEmptyBody(t *testing.T) {
	svc := NewChatService(&fakeChatStore{}, nil)

	_, err := svc.PostMessage(context.Background(), 7, models.ChatSenderUser, &models.CreateChatMessageRequest{})
	if _, ok := AsValidationError(err); !ok {
		t.Errorf("expected validation error for empty body, got %v", err)
	}
}
