package pkg

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	CreateHeader(ctx context.Context, in domain.PackageHeader) (*domain.PackageHeader, error)
	GetHeader(ctx context.Context, id string) (*domain.PackageHeader, error)
	ListHeaders(ctx context.Context, params domain.ListParams) ([]domain.PackageHeader, int, error)
	DeleteHeader(ctx context.Context, id string) error

	CreateItem(ctx context.Context, in domain.PackageItem) (*domain.PackageItem, error)
	GetItem(ctx context.Context, id string) (*domain.PackageItem, error)
	DeleteItem(ctx context.Context, id string) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx scopes one CSV import to a single database transaction so a bad
// row rolls back everything written before it.
type ImportTx interface {
	HeadersByText(ctx context.Context, header string) ([]domain.PackageHeader, error)
	InsertHeader(ctx context.Context, in domain.PackageHeader) (*domain.PackageHeader, error)
	InsertItem(ctx context.Context, in domain.PackageItem) (*domain.PackageItem, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
