package influencer

import (
	"context"
	"errors"
	"fmt"
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

var sortColumns = map[string]string{
	"name":        "name",
	"price":       "price",
	"subscribers": "subscribers",
	"createdAt":   "created_at",
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Influencer) (*domain.Influencer, error) {
	const q = `
INSERT INTO influencers (name, handle, platform, subscribers, price, categories)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	out := in
	err := r.pool.QueryRow(ctx, q, in.Name, in.Handle, in.Platform, in.Subscribers, in.Price, in.Categories).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("influencer repo: create handle=%s error=%v", in.Handle, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Influencer, error) {
	const q = `
SELECT id::text, name, handle, platform, subscribers, price, categories, created_at
FROM influencers
WHERE id = $1
`
	var inf domain.Influencer
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&inf.ID, &inf.Name, &inf.Handle, &inf.Platform, &inf.Subscribers, &inf.Price, &inf.Categories, &inf.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("influencer repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &inf, nil
}

func (r *postgresRepo) List(ctx context.Context, params domain.ListParams) ([]domain.Influencer, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM influencers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[params.SortField]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if params.Desc() || params.SortField == "" {
		dir = "DESC"
	}

	q := fmt.Sprintf(`
SELECT id::text, name, handle, platform, subscribers, price, categories, created_at
FROM influencers
ORDER BY %s %s
LIMIT $1 OFFSET $2
`, col, dir)

	rows, err := r.pool.Query(ctx, q, params.Limit, params.Offset())
	if err != nil {
		r.logger.Printf("influencer repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Influencer
	for rows.Next() {
		var inf domain.Influencer
		if err := rows.Scan(&inf.ID, &inf.Name, &inf.Handle, &inf.Platform, &inf.Subscribers, &inf.Price, &inf.Categories, &inf.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, inf)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) Update(ctx context.Context, in domain.Influencer) (*domain.Influencer, error) {
	const q = `
UPDATE influencers
SET name = $2, handle = $3, platform = $4, subscribers = $5, price = $6, categories = $7
WHERE id = $1
RETURNING id::text, created_at
`
	out := in
	err := r.pool.QueryRow(ctx, q, in.ID, in.Name, in.Handle, in.Platform, in.Subscribers, in.Price, in.Categories).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("influencer repo: update id=%s error=%v", in.ID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM influencers WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("influencer repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
