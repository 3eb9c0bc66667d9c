package checkout

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

func (r *postgresRepo) Create(ctx context.Context, in domain.Checkout) (*domain.Checkout, error) {
	const q = `
INSERT INTO checkouts (cart_id, user_id, coupon_id, subtotal, management_fee, coupon_discount, total, payment_intent_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
RETURNING id::text, created_at
`
	out := in
	err := r.pool.QueryRow(ctx, q, in.CartID, in.UserID, in.CouponID,
		in.Subtotal, in.ManagementFee, in.CouponDiscount, in.Total, in.PaymentIntentID).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("checkout repo: create cart_id=%s error=%v", in.CartID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Checkout, error) {
	const q = `
SELECT id::text, cart_id::text, user_id::text, coupon_id::text,
       subtotal, management_fee, coupon_discount, total, COALESCE(payment_intent_id, ''), created_at
FROM checkouts
WHERE id = $1
`
	var c domain.Checkout
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.CartID, &c.UserID, &c.CouponID,
		&c.Subtotal, &c.ManagementFee, &c.CouponDiscount, &c.Total, &c.PaymentIntentID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("checkout repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &c, nil
}
