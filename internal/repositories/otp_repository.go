package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockgyan-backend/internal/models"
)

type OTPRepository struct {
	DB *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{DB: db}
}

// Upsert writes the single challenge row for a mobile number, superseding any
// previous challenge for it in one statement. The ON CONFLICT path resets
// attempts and the consumed flag, so the old code stops verifying the moment
// this returns.
func (r *OTPRepository) Upsert(ctx context.Context, c *models.OtpChallenge) error {
	query := `
		INSERT INTO otp_challenges(mobile, code_hash, full_name, email, experience,
		                           investment_range, pending_action, expires_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (mobile) DO UPDATE SET
			code_hash = EXCLUDED.code_hash,
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			experience = EXCLUDED.experience,
			investment_range = EXCLUDED.investment_range,
			pending_action = EXCLUDED.pending_action,
			attempts = 0,
			consumed = FALSE,
			created_at = CURRENT_TIMESTAMP,
			expires_at = EXCLUDED.expires_at
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		c.Mobile,
		c.CodeHash,
		c.FullName,
		c.Email,
		c.Experience,
		c.InvestmentRange,
		c.PendingAction,
		c.ExpiresAt,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetByMobile retrieves the challenge row for a mobile number. Returns
// (nil, nil) when no challenge has ever been issued for it.
func (r *OTPRepository) GetByMobile(ctx context.Context, mobile string) (*models.OtpChallenge, error) {
	query := `
		SELECT id, mobile, code_hash, full_name, email, experience,
		       investment_range, pending_action, attempts, consumed, created_at, expires_at
		FROM otp_challenges
		WHERE mobile = $1
	`

	var c models.OtpChallenge
	err := r.DB.QueryRow(ctx, query, mobile).Scan(
		&c.ID,
		&c.Mobile,
		&c.CodeHash,
		&c.FullName,
		&c.Email,
		&c.Experience,
		&c.InvestmentRange,
		&c.PendingAction,
		&c.Attempts,
		&c.Consumed,
		&c.CreatedAt,
		&c.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// IncrementAttempts increments the verification attempt counter
func (r *OTPRepository) IncrementAttempts(ctx context.Context, id int) error {
	query := `UPDATE otp_challenges SET attempts = attempts + 1 WHERE id = $1`
	_, err := r.DB.Exec(ctx, query, id)
	return err
}

// MarkConsumed invalidates a challenge after successful verification
func (r *OTPRepository) MarkConsumed(ctx context.Context, id int) error {
	query := `UPDATE otp_challenges SET consumed = TRUE WHERE id = $1`
	_, err := r.DB.Exec(ctx, query, id)
	return err
}

// Delete removes the challenge row. Used to roll back when SMS delivery fails
// so no usable challenge remains active.
func (r *OTPRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM otp_challenges WHERE id = $1`
	_, err := r.DB.Exec(ctx, query, id)
	return err
}

// CleanupExpired removes stale challenge rows (run as a background job)
func (r *OTPRepository) CleanupExpired(ctx context.Context) error {
	query := `DELETE FROM otp_challenges WHERE expires_at < NOW() - INTERVAL '1 day'`
	_, err := r.DB.Exec(ctx, query)
	return err
}
