package onboarding

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kol-marketplace/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	const q = `
SELECT id::text, text, position, created_at
FROM questions
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("onboarding repo: list questions error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	byID := map[string]*domain.Question{}
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(&question.ID, &question.Text, &question.Position, &question.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	const oq = `
SELECT id::text, question_id::text, text, reference
FROM question_options
ORDER BY question_id, id
`
	orows, err := r.pool.Query(ctx, oq)
	if err != nil {
		return nil, err
	}
	defer orows.Close()
	for orows.Next() {
		var opt domain.QuestionOption
		if err := orows.Scan(&opt.ID, &opt.QuestionID, &opt.Text, &opt.Reference); err != nil {
			return nil, err
		}
		if question, ok := byID[opt.QuestionID]; ok {
			question.Options = append(question.Options, opt)
		}
	}
	return questions, orows.Err()
}

func (r *postgresRepo) OptionsByIDs(ctx context.Context, optionIDs, questionIDs []string) ([]domain.QuestionOption, error) {
	const q = `
SELECT id::text, question_id::text, text, reference
FROM question_options
WHERE id = ANY($1) AND question_id = ANY($2)
`
	rows, err := r.pool.Query(ctx, q, optionIDs, questionIDs)
	if err != nil {
		r.logger.Printf("onboarding repo: options by ids error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var options []domain.QuestionOption
	for rows.Next() {
		var opt domain.QuestionOption
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Text, &opt.Reference); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (r *postgresRepo) SaveSelections(ctx context.Context, userID string, selections []domain.Selection, priorities map[string]int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const upsert = `
INSERT INTO onboarding_answers (user_id, question_id, selected_option_id)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, question_id) DO UPDATE SET
    selected_option_id = EXCLUDED.selected_option_id,
    updated_at = now()
`
	for _, sel := range selections {
		if _, err := tx.Exec(ctx, upsert, userID, sel.QuestionID, sel.OptionID); err != nil {
			return err
		}
	}

	// Full replace, not a merge: the priority table always mirrors the
	// latest submission.
	if _, err := tx.Exec(ctx, `DELETE FROM reference_priorities WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `
INSERT INTO reference_priorities (user_id, reference, count)
VALUES ($1, $2, $3)
`
	for ref, count := range priorities {
		if _, err := tx.Exec(ctx, insert, userID, ref, count); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
