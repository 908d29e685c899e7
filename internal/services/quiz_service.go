package services

import (
	"context"
	"fmt"

	"stockgyan-backend/internal/models"
)

type QuizAttemptStore interface {
	Create(ctx context.Context, a *models.QuizAttempt) error
	ListByUser(ctx context.Context, userID int) ([]*models.QuizAttempt, error)
}

// QuizService records and lists quiz attempts for logged-in learners
type QuizService struct {
	attempts QuizAttemptStore
}

func NewQuizService(attempts QuizAttemptStore) *QuizService {
	return &QuizService{attempts: attempts}
}

func (s *QuizService) RecordAttempt(ctx context.Context, userID int, req *models.CreateQuizAttemptRequest) (*models.QuizAttempt, error) {
	if ve := validatePayload(req); ve != nil {
		return nil, ve
	}
	if req.Score > req.TotalQuestions {
		return nil, &ValidationError{Fields: map[string]string{
			"score": "cannot exceed total_questions",
		}}
	}

	attempt := &models.QuizAttempt{
		UserID:         userID,
		QuizSlug:       req.QuizSlug,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        req.Answers,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("storing quiz attempt: %w", err)
	}
	return attempt, nil
}

func (s *QuizService) ListAttempts(ctx context.Context, userID int) ([]*models.QuizAttempt, error) {
	return s.attempts.ListByUser(ctx, userID)
}
