package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kol-marketplace/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (full_name, email, status)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`
	out := in
	if out.Status == "" {
		out.Status = domain.UserStatusActive
	}
	err := r.pool.QueryRow(ctx, q, out.FullName, out.Email, out.Status).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("user repo: create email=%s error=%v", in.Email, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, full_name, email, status, created_at
FROM users
WHERE id = $1
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.FullName, &u.Email, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &u, nil
}
