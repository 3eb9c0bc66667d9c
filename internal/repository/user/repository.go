package user

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
