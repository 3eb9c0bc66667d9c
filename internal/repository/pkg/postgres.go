package pkg

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

const headerColumns = `id::text, header, cost,
COALESCE(text1, ''), COALESCE(text2, ''), COALESCE(text3, ''), COALESCE(text4, ''),
COALESCE(text5, ''), COALESCE(text6, ''), COALESCE(text7, ''), created_at`

const itemColumns = `id::text, header_id::text, media, link, format, monthly_traffic, turnaround_time, created_at`

func scanHeader(row pgx.Row, h *domain.PackageHeader) error {
	return row.Scan(&h.ID, &h.Header, &h.Cost,
		&h.Text1, &h.Text2, &h.Text3, &h.Text4, &h.Text5, &h.Text6, &h.Text7, &h.CreatedAt)
}

func (r *postgresRepo) CreateHeader(ctx context.Context, in domain.PackageHeader) (*domain.PackageHeader, error) {
	return insertHeader(ctx, r.pool, in)
}

func (r *postgresRepo) GetHeader(ctx context.Context, id string) (*domain.PackageHeader, error) {
	q := fmt.Sprintf(`SELECT %s FROM package_headers WHERE id = $1`, headerColumns)
	var h domain.PackageHeader
	if err := scanHeader(r.pool.QueryRow(ctx, q, id), &h); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("pkg repo: get header id=%s error=%v", id, err)
		return nil, err
	}
	items, err := r.itemsForHeaders(ctx, []string{h.ID})
	if err != nil {
		return nil, err
	}
	h.Items = items[h.ID]
	return &h, nil
}

var headerSortColumns = map[string]string{
	"header":    "header",
	"cost":      "cost",
	"createdAt": "created_at",
}

func (r *postgresRepo) ListHeaders(ctx context.Context, params domain.ListParams) ([]domain.PackageHeader, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM package_headers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := headerSortColumns[params.SortField]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if params.Desc() || params.SortField == "" {
		dir = "DESC"
	}

	q := fmt.Sprintf(`SELECT %s FROM package_headers ORDER BY %s %s LIMIT $1 OFFSET $2`, headerColumns, col, dir)
	rows, err := r.pool.Query(ctx, q, params.Limit, params.Offset())
	if err != nil {
		r.logger.Printf("pkg repo: list headers error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var headers []domain.PackageHeader
	var ids []string
	for rows.Next() {
		var h domain.PackageHeader
		if err := scanHeader(rows, &h); err != nil {
			return nil, 0, err
		}
		headers = append(headers, h)
		ids = append(ids, h.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		items, err := r.itemsForHeaders(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range headers {
			headers[i].Items = items[headers[i].ID]
		}
	}
	return headers, total, nil
}

// itemsForHeaders resolves child items for a page of headers in one query
// instead of one query per header.
func (r *postgresRepo) itemsForHeaders(ctx context.Context, headerIDs []string) (map[string][]domain.PackageItem, error) {
	q := fmt.Sprintf(`SELECT %s FROM package_items WHERE header_id = ANY($1) ORDER BY created_at ASC`, itemColumns)
	rows, err := r.pool.Query(ctx, q, headerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.PackageItem, len(headerIDs))
	for rows.Next() {
		var it domain.PackageItem
		if err := rows.Scan(&it.ID, &it.HeaderID, &it.Media, &it.Link, &it.Format, &it.MonthlyTraffic, &it.TurnaroundTime, &it.CreatedAt); err != nil {
			return nil, err
		}
		out[it.HeaderID] = append(out[it.HeaderID], it)
	}
	return out, rows.Err()
}

func (r *postgresRepo) DeleteHeader(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM package_headers WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("pkg repo: delete header id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CreateItem(ctx context.Context, in domain.PackageItem) (*domain.PackageItem, error) {
	return insertItem(ctx, r.pool, in)
}

func (r *postgresRepo) GetItem(ctx context.Context, id string) (*domain.PackageItem, error) {
	q := fmt.Sprintf(`SELECT %s FROM package_items WHERE id = $1`, itemColumns)
	var it domain.PackageItem
	err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.HeaderID, &it.Media, &it.Link, &it.Format, &it.MonthlyTraffic, &it.TurnaroundTime, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("pkg repo: get item id=%s error=%v", id, err)
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM package_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func insertHeader(ctx context.Context, q querier, in domain.PackageHeader) (*domain.PackageHeader, error) {
	const stmt = `
INSERT INTO package_headers (header, cost, text1, text2, text3, text4, text5, text6, text7)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
RETURNING id::text, created_at
`
	out := in
	err := q.QueryRow(ctx, stmt, in.Header, in.Cost,
		in.Text1, in.Text2, in.Text3, in.Text4, in.Text5, in.Text6, in.Text7).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func insertItem(ctx context.Context, q querier, in domain.PackageItem) (*domain.PackageItem, error) {
	const stmt = `
INSERT INTO package_items (header_id, media, link, format, monthly_traffic, turnaround_time)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	out := in
	err := q.QueryRow(ctx, stmt, in.HeaderID, in.Media, in.Link, in.Format, in.MonthlyTraffic, in.TurnaroundTime).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) BeginImport(ctx context.Context) (ImportTx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &importTx{tx: tx}, nil
}

type importTx struct {
	tx pgx.Tx
}

func (t *importTx) HeadersByText(ctx context.Context, header string) ([]domain.PackageHeader, error) {
	q := fmt.Sprintf(`SELECT %s FROM package_headers WHERE header = $1 ORDER BY created_at ASC`, headerColumns)
	rows, err := t.tx.Query(ctx, q, header)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PackageHeader
	for rows.Next() {
		var h domain.PackageHeader
		if err := scanHeader(rows, &h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (t *importTx) InsertHeader(ctx context.Context, in domain.PackageHeader) (*domain.PackageHeader, error) {
	return insertHeader(ctx, t.tx, in)
}

func (t *importTx) InsertItem(ctx context.Context, in domain.PackageItem) (*domain.PackageItem, error) {
	return insertItem(ctx, t.tx, in)
}

func (t *importTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *importTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
