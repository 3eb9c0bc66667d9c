package onboarding

import (
	"context"

	"kol-marketplace/internal/domain"
)

type Repository interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)

	// OptionsByIDs bulk-fetches options filtered by both the option-id set
	// and the question-id set, so a forged option from another question
	// never comes back.
	OptionsByIDs(ctx context.Context, optionIDs, questionIDs []string) ([]domain.QuestionOption, error)

	// SaveSelections writes the per-question answer upserts and the full
	// replacement of the user's reference priorities in one transaction.
	SaveSelections(ctx context.Context, userID string, selections []domain.Selection, priorities map[string]int) error
}
