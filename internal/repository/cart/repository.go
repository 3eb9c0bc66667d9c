package cart

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, userID *string) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Cart, int, error)
	Delete(ctx context.Context, id string) error

	AddPackageItem(ctx context.Context, cartID, headerID string, quantity int) error
	AddInfluencerItem(ctx context.Context, cartID, influencerID string, quantity int) error
	RemovePackageItem(ctx context.Context, cartID, itemID string) error
	RemoveInfluencerItem(ctx context.Context, cartID, itemID string) error
}
