package influencer

import (
	"context"
	"errors"
	"strings"

	"kol-marketplace/internal/cache"
	"kol-marketplace/internal/domain"
)

type Service struct {
	repo  influencerRepo
	cache *cache.Cache
}

type influencerRepo interface {
	Create(ctx context.Context, in domain.Influencer) (*domain.Influencer, error)
	GetByID(ctx context.Context, id string) (*domain.Influencer, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Influencer, int, error)
	Update(ctx context.Context, in domain.Influencer) (*domain.Influencer, error)
	Delete(ctx context.Context, id string) error
}

func New(repo influencerRepo, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

func validate(in domain.Influencer) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(in.Platform) == "" {
		return errors.New("platform is required")
	}
	if in.Subscribers < 0 {
		return errors.New("subscribers must not be negative")
	}
	if in.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in domain.Influencer) (*domain.Influencer, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Influencer, error) {
	key := "influencer:" + id
	var cached domain.Influencer
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}
	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, in, cache.InfluencerTTL)
	return in, nil
}

func (s *Service) List(ctx context.Context, params domain.ListParams) ([]domain.Influencer, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Update(ctx context.Context, in domain.Influencer) (*domain.Influencer, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "influencer:"+in.ID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "influencer:"+id)
	return nil
}
