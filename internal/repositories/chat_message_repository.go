package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockgyan-backend/internal/models"
)

type ChatMessageRepository struct {
	DB *pgxpool.Pool
}

func NewChatMessageRepository(db *pgxpool.Pool) *ChatMessageRepository {
	return &ChatMessageRepository{DB: db}
}

func (r *ChatMessageRepository) Create(ctx context.Context, m *models.ChatMessage) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO chat_messages(user_id, sender, body)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		m.UserID, m.Sender, m.Body,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *ChatMessageRepository) ListByUser(ctx context.Context, userID int, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, sender, body, created_at
         FROM chat_messages WHERE user_id=$1 ORDER BY created_at ASC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
