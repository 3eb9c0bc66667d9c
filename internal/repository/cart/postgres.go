package cart

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

func (r *postgresRepo) Create(ctx context.Context, userID *string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id)
VALUES ($1)
RETURNING id::text, created_at, updated_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		r.logger.Printf("cart repo: create error=%v", err)
		return nil, err
	}
	cart.UserID = userID
	cart.PackageItems = []domain.PackageCartItem{}
	cart.InfluencerItems = []domain.InfluencerCartItem{}
	return &cart, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const q = `
SELECT id::text, user_id::text, created_at, updated_at
FROM carts
WHERE id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, id).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("cart repo: get id=%s error=%v", id, err)
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Cart{&cart}); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) List(ctx context.Context, params domain.ListParams) ([]domain.Cart, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM carts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if params.Desc() || params.SortField == "" {
		dir = "DESC"
	}
	col := "created_at"
	if params.SortField == "updatedAt" {
		col = "updated_at"
	}

	q := fmt.Sprintf(`
SELECT id::text, user_id::text, created_at, updated_at
FROM carts
ORDER BY %s %s
LIMIT $1 OFFSET $2
`, col, dir)

	rows, err := r.pool.Query(ctx, q, params.Limit, params.Offset())
	if err != nil {
		r.logger.Printf("cart repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
			return nil, 0, err
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*domain.Cart, len(carts))
	for i := range carts {
		refs[i] = &carts[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return carts, total, nil
}

// loadItems resolves both line-item kinds for a page of carts with two
// joined queries, avoiding per-cart round trips.
func (r *postgresRepo) loadItems(ctx context.Context, carts []*domain.Cart) error {
	if len(carts) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Cart, len(carts))
	ids := make([]string, 0, len(carts))
	for _, c := range carts {
		c.PackageItems = []domain.PackageCartItem{}
		c.InfluencerItems = []domain.InfluencerCartItem{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	const pkgQ = `
SELECT pci.id::text, pci.cart_id::text, pci.header_id::text, pci.quantity,
       h.id::text, h.header, h.cost,
       COALESCE(h.text1, ''), COALESCE(h.text2, ''), COALESCE(h.text3, ''), COALESCE(h.text4, ''),
       COALESCE(h.text5, ''), COALESCE(h.text6, ''), COALESCE(h.text7, ''), h.created_at
FROM package_cart_items pci
JOIN package_headers h ON h.id = pci.header_id
WHERE pci.cart_id = ANY($1)
ORDER BY pci.created_at ASC
`
	rows, err := r.pool.Query(ctx, pkgQ, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.PackageCartItem
		h := &item.Package
		if err := rows.Scan(&item.ID, &item.CartID, &item.HeaderID, &item.Quantity,
			&h.ID, &h.Header, &h.Cost,
			&h.Text1, &h.Text2, &h.Text3, &h.Text4, &h.Text5, &h.Text6, &h.Text7, &h.CreatedAt); err != nil {
			return err
		}
		if c, ok := byID[item.CartID]; ok {
			c.PackageItems = append(c.PackageItems, item)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const infQ = `
SELECT ici.id::text, ici.cart_id::text, ici.influencer_id::text, ici.quantity,
       i.id::text, i.name, i.handle, i.platform, i.subscribers, i.price, i.categories, i.created_at
FROM influencer_cart_items ici
JOIN influencers i ON i.id = ici.influencer_id
WHERE ici.cart_id = ANY($1)
ORDER BY ici.created_at ASC
`
	irows, err := r.pool.Query(ctx, infQ, ids)
	if err != nil {
		return err
	}
	defer irows.Close()
	for irows.Next() {
		var item domain.InfluencerCartItem
		inf := &item.Influencer
		if err := irows.Scan(&item.ID, &item.CartID, &item.InfluencerID, &item.Quantity,
			&inf.ID, &inf.Name, &inf.Handle, &inf.Platform, &inf.Subscribers, &inf.Price, &inf.Categories, &inf.CreatedAt); err != nil {
			return err
		}
		if c, ok := byID[item.CartID]; ok {
			c.InfluencerItems = append(c.InfluencerItems, item)
		}
	}
	return irows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("cart repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AddPackageItem(ctx context.Context, cartID, headerID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM package_headers WHERE id = $1)`, headerID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO package_cart_items (cart_id, header_id, quantity)
VALUES ($1, $2, $3)
`, cartID, headerID, quantity); err != nil {
		return err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) AddInfluencerItem(ctx context.Context, cartID, influencerID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM influencers WHERE id = $1)`, influencerID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO influencer_cart_items (cart_id, influencer_id, quantity)
VALUES ($1, $2, $3)
`, cartID, influencerID, quantity); err != nil {
		return err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) RemovePackageItem(ctx context.Context, cartID, itemID string) error {
	return r.removeItem(ctx, "package_cart_items", cartID, itemID)
}

func (r *postgresRepo) RemoveInfluencerItem(ctx context.Context, cartID, itemID string) error {
	return r.removeItem(ctx, "influencer_cart_items", cartID, itemID)
}

func (r *postgresRepo) removeItem(ctx context.Context, table, cartID, itemID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND cart_id = $2`, table), itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	cmd, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
