package pkg

import (
	"context"
	"errors"
	"strings"

	"kol-marketplace/internal/domain"
	"kol-marketplace/internal/repository/pkg"
)

type Service struct {
	repo pkg.Repository
}

func New(repo pkg.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateHeader(ctx context.Context, in domain.PackageHeader) (*domain.PackageHeader, error) {
	if strings.TrimSpace(in.Header) == "" {
		return nil, errors.New("header is required")
	}
	if in.Cost < 0 {
		return nil, errors.New("cost must not be negative")
	}
	return s.repo.CreateHeader(ctx, in)
}

func (s *Service) GetHeader(ctx context.Context, id string) (*domain.PackageHeader, error) {
	return s.repo.GetHeader(ctx, id)
}

func (s *Service) ListHeaders(ctx context.Context, params domain.ListParams) ([]domain.PackageHeader, int, error) {
	return s.repo.ListHeaders(ctx, params)
}

func (s *Service) DeleteHeader(ctx context.Context, id string) error {
	return s.repo.DeleteHeader(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, in domain.PackageItem) (*domain.PackageItem, error) {
	if strings.TrimSpace(in.HeaderID) == "" {
		return nil, errors.New("headerId is required")
	}
	// Parent must exist before the item is attached.
	if _, err := s.repo.GetHeader(ctx, in.HeaderID); err != nil {
		return nil, err
	}
	return s.repo.CreateItem(ctx, in)
}

func (s *Service) GetItem(ctx context.Context, id string) (*domain.PackageItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}
