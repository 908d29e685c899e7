package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockgyan-backend/internal/models"
)

type SessionRepository struct {
	DB *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO sessions(id, user_id) VALUES($1, $2) RETURNING created_at`,
		s.ID, s.UserID,
	).Scan(&s.CreatedAt)
}

// Get retrieves a session by ID. Returns (nil, nil) when the ID is unknown.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, user_id, created_at, revoked_at FROM sessions WHERE id=$1`, id)

	var s models.Session
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.RevokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Revoke tears down a session so its token stops authenticating
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id=$1 AND revoked_at IS NULL`, id)
	return err
}

// RevokeForUser revokes every active session a user holds. Called before a
// new session is created so one user has at most one active session.
func (r *SessionRepository) RevokeForUser(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id=$1 AND revoked_at IS NULL`, userID)
	return err
}
