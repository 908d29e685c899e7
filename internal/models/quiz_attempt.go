package models

import (
	"encoding/json"
	"time"
)

// QuizAttempt records one completed quiz by a logged-in learner
type QuizAttempt struct {
	ID             int             `json:"id"`
	UserID         int             `json:"user_id"`
	QuizSlug       string          `json:"quiz_slug"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	Answers        json.RawMessage `json:"answers,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateQuizAttemptRequest is the payload for recording a quiz attempt
type CreateQuizAttemptRequest struct {
	QuizSlug       string          `json:"quiz_slug" validate:"required,max=100"`
	Score          int             `json:"score" validate:"min=0"`
	TotalQuestions int             `json:"total_questions" validate:"required,min=1"`
	Answers        json.RawMessage `json:"answers,omitempty"`
}
