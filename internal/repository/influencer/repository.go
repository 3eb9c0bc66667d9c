package influencer

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.Influencer) (*domain.Influencer, error)
	GetByID(ctx context.Context, id string) (*domain.Influencer, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Influencer, int, error)
	Update(ctx context.Context, in domain.Influencer) (*domain.Influencer, error)
	Delete(ctx context.Context, id string) error
}
