package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/database"
)

// BarrierIDsKey names the recorded question-id list in exports and logs.
const BarrierIDsKey = "barrierQuestionIDs"

// BarrierRepository tracks which questions already have a submitted barrier.
// The list only grows.
type BarrierRepository interface {
	// Record adds questionID; recording the same id twice is a no-op.
	Record(ctx context.Context, questionID string) error
	// List returns ids in the order they were first recorded.
	List(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, questionID string) (bool, error)
	Set(ctx context.Context) (map[string]struct{}, error)
}

type barrierRepository struct {
	db *database.DB
}

// NewBarrierRepository creates a repository backed by the barrier_question table.
func NewBarrierRepository(db *database.DB) BarrierRepository {
	return &barrierRepository{db: db}
}

func (r *barrierRepository) Record(ctx context.Context, questionID string) error {
	if strings.TrimSpace(questionID) == "" {
		return apperrors.ErrMissingQuestionID
	}

	query := `
		INSERT INTO barrier_question (question_id)
		VALUES (?)
		ON CONFLICT (question_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, questionID); err != nil {
		return fmt.Errorf("failed to record barrier question: %w", err)
	}
	return nil
}

func (r *barrierRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question_id FROM barrier_question ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list barrier questions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan barrier question: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate barrier questions: %w", err)
	}
	return ids, nil
}

func (r *barrierRepository) Contains(ctx context.Context, questionID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM barrier_question WHERE question_id = ?)`, questionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check barrier question: %w", err)
	}
	return exists, nil
}

func (r *barrierRepository) Set(ctx context.Context) (map[string]struct{}, error) {
	ids, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
