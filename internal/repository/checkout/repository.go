package checkout

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.Checkout) (*domain.Checkout, error)
	GetByID(ctx context.Context, id string) (*domain.Checkout, error)
}
