package invoice

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Invoice, int, error)
	SetPDFURL(ctx context.Context, id, url string) error
}
