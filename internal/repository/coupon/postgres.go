package coupon

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

const couponColumns = `id::text, name, expiry_ts, discount_percentage, minimum_order_value, active, created_at`

func scanCoupon(row pgx.Row, c *domain.CouponCode) error {
	return row.Scan(&c.ID, &c.Name, &c.ExpiryTimestamp, &c.DiscountPercentage, &c.MinimumOrderValue, &c.Active, &c.CreatedAt)
}

func (r *postgresRepo) Create(ctx context.Context, in domain.CouponCode) (*domain.CouponCode, error) {
	const q = `
INSERT INTO coupon_codes (name, expiry_ts, discount_percentage, minimum_order_value, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	out := in
	err := r.pool.QueryRow(ctx, q, in.Name, in.ExpiryTimestamp, in.DiscountPercentage, in.MinimumOrderValue, in.Active).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("coupon repo: create name=%s error=%v", in.Name, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CouponCode, error) {
	q := fmt.Sprintf(`SELECT %s FROM coupon_codes WHERE id = $1`, couponColumns)
	var c domain.CouponCode
	if err := scanCoupon(r.pool.QueryRow(ctx, q, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("coupon repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetActive(ctx context.Context, id string) (*domain.CouponCode, error) {
	q := fmt.Sprintf(`SELECT %s FROM coupon_codes WHERE id = $1 AND active = true`, couponColumns)
	var c domain.CouponCode
	if err := scanCoupon(r.pool.QueryRow(ctx, q, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("coupon repo: get active id=%s error=%v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context, params domain.ListParams) ([]domain.CouponCode, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coupon_codes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if params.Desc() || params.SortField == "" {
		dir = "DESC"
	}
	col := "created_at"
	if params.SortField == "name" {
		col = "name"
	}

	q := fmt.Sprintf(`SELECT %s FROM coupon_codes ORDER BY %s %s LIMIT $1 OFFSET $2`, couponColumns, col, dir)
	rows, err := r.pool.Query(ctx, q, params.Limit, params.Offset())
	if err != nil {
		r.logger.Printf("coupon repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.CouponCode
	for rows.Next() {
		var c domain.CouponCode
		if err := scanCoupon(rows, &c); err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM coupon_codes WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("coupon repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) BeginUsage(ctx context.Context) (UsageTx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	return &usageTx{tx: tx}, nil
}

type usageTx struct {
	tx pgx.Tx
}

// Get locks the usage row for the rest of the transaction. Returns nil when
// the pair has no record yet.
func (t *usageTx) Get(ctx context.Context, userID, couponID string) (*domain.UserCoupon, error) {
	const q = `
SELECT id::text, user_id::text, coupon_id::text, is_used, has_avail
FROM user_coupons
WHERE user_id = $1 AND coupon_id = $2
FOR UPDATE
`
	var uc domain.UserCoupon
	err := t.tx.QueryRow(ctx, q, userID, couponID).Scan(&uc.ID, &uc.UserID, &uc.CouponID, &uc.IsUsed, &uc.HasAvail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &uc, nil
}

func (t *usageTx) Reserve(ctx context.Context, userID, couponID string) error {
	const q = `
INSERT INTO user_coupons (user_id, coupon_id, has_avail)
VALUES ($1, $2, true)
ON CONFLICT (user_id, coupon_id) DO UPDATE SET has_avail = true
`
	_, err := t.tx.Exec(ctx, q, userID, couponID)
	return err
}

func (t *usageTx) MarkUsed(ctx context.Context, userID, couponID string) error {
	const q = `
INSERT INTO user_coupons (user_id, coupon_id, is_used, has_avail)
VALUES ($1, $2, true, true)
ON CONFLICT (user_id, coupon_id) DO UPDATE SET is_used = true, has_avail = true
`
	_, err := t.tx.Exec(ctx, q, userID, couponID)
	return err
}

func (t *usageTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *usageTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
