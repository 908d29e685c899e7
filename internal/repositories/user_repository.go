package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockgyan-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(full_name, mobile, email, experience, investment_range)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		u.FullName, u.Mobile, u.Email, u.Experience, u.InvestmentRange,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, full_name, mobile, COALESCE(email, '') as email, experience,
                COALESCE(investment_range, '') as investment_range, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.FullName, &user.Mobile, &user.Email,
		&user.Experience, &user.InvestmentRange, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByMobile retrieves a user by mobile number. Returns (nil, nil) when no
// user exists for it, so callers can tell "not registered yet" apart from a
// storage failure.
func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, full_name, mobile, COALESCE(email, '') as email, experience,
                COALESCE(investment_range, '') as investment_range, created_at, updated_at
         FROM users WHERE mobile=$1`, mobile)

	var user models.User
	err := row.Scan(&user.ID, &user.FullName, &user.Mobile, &user.Email,
		&user.Experience, &user.InvestmentRange, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
