package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockgyan-backend/internal/models"
)

type QuizAttemptRepository struct {
	DB *pgxpool.Pool
}

func NewQuizAttemptRepository(db *pgxpool.Pool) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(ctx context.Context, a *models.QuizAttempt) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO quiz_attempts(user_id, quiz_slug, score, total_questions, answers)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		a.UserID, a.QuizSlug, a.Score, a.TotalQuestions, a.Answers,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *QuizAttemptRepository) ListByUser(ctx context.Context, userID int) ([]*models.QuizAttempt, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, quiz_slug, score, total_questions, answers, created_at
         FROM quiz_attempts WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		err := rows.Scan(&a.ID, &a.UserID, &a.QuizSlug, &a.Score, &a.TotalQuestions,
			&a.Answers, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}
