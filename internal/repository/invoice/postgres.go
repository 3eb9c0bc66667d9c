package invoice

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

const invoiceColumns = `id::text, checkout_id::text, number, amount, COALESCE(pdf_url, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.Invoice) (*domain.Invoice, error) {
	const q = `
INSERT INTO invoices (checkout_id, number, amount, pdf_url)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id::text, created_at
`
	out := in
	err := r.pool.QueryRow(ctx, q, in.CheckoutID, in.Number, in.Amount, in.PDFURL).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("invoice repo: create checkout_id=%s error=%v", in.CheckoutID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	q := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = $1`, invoiceColumns)
	var inv domain.Invoice
	err := r.pool.QueryRow(ctx, q, id).Scan(&inv.ID, &inv.CheckoutID, &inv.Number, &inv.Amount, &inv.PDFURL, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("invoice repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &inv, nil
}

func (r *postgresRepo) List(ctx context.Context, params domain.ListParams) ([]domain.Invoice, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if params.Desc() || params.SortField == "" {
		dir = "DESC"
	}

	q := fmt.Sprintf(`SELECT %s FROM invoices ORDER BY created_at %s LIMIT $1 OFFSET $2`, invoiceColumns, dir)
	rows, err := r.pool.Query(ctx, q, params.Limit, params.Offset())
	if err != nil {
		r.logger.Printf("invoice repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.CheckoutID, &inv.Number, &inv.Amount, &inv.PDFURL, &inv.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) SetPDFURL(ctx context.Context, id, url string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE invoices SET pdf_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		r.logger.Printf("invoice repo: set pdf url id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
