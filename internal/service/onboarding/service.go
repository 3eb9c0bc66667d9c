package onboarding

import (
	"context"
	"errors"
	"io"
	"log"

	"kol-marketplace/internal/domain"
)

type Service struct {
	repo   onboardingRepo
	users  userRepo
	logger *log.Logger
}

type onboardingRepo interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	OptionsByIDs(ctx context.Context, optionIDs, questionIDs []string) ([]domain.QuestionOption, error)
	SaveSelections(ctx context.Context, userID string, selections []domain.Selection, priorities map[string]int) error
}

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

func New(repo onboardingRepo, users userRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, users: users, logger: logger}
}

func (s *Service) Questions(ctx context.Context) ([]domain.Question, error) {
	return s.repo.ListQuestions(ctx)
}

// ProcessSelections validates and persists a user's questionnaire answers.
// Either every answer and the rebuilt priority table land, or nothing does.
func (s *Service) ProcessSelections(ctx context.Context, userID string, selections []domain.Selection) error {
	if userID == "" || len(selections) == 0 {
		return errors.New("userId and selections are required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotActive
		}
		return err
	}
	if !u.Active() {
		return domain.ErrUserNotActive
	}

	optionIDs := make([]string, 0, len(selections))
	questionIDs := make([]string, 0, len(selections))
	for _, sel := range selections {
		if sel.OptionID == "" || sel.QuestionID == "" {
			return domain.ErrInvalidOption
		}
		optionIDs = append(optionIDs, sel.OptionID)
		questionIDs = append(questionIDs, sel.QuestionID)
	}

	options, err := s.repo.OptionsByIDs(ctx, optionIDs, questionIDs)
	if err != nil {
		return err
	}
	byID := make(map[string]domain.QuestionOption, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	// Options must exist and belong to the question they were submitted
	// under; a valid option id paired with the wrong question is rejected.
	priorities := make(map[string]int)
	for _, sel := range selections {
		opt, ok := byID[sel.OptionID]
		if !ok || opt.QuestionID != sel.QuestionID {
			return domain.ErrInvalidOption
		}
		priorities[opt.Reference]++
	}

	if err := s.repo.SaveSelections(ctx, userID, selections, priorities); err != nil {
		return err
	}
	s.logger.Printf("onboarding: saved %d answers for user %s", len(selections), userID)
	return nil
}
