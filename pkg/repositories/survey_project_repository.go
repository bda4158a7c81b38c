package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/database"
	"github.com/evanterry/surveyor/pkg/models"
)

// SurveyProjectKey is the snapshot key of the survey being conducted.
const SurveyProjectKey = "selectedSurveyProject"

// SurveyProjectRepository persists the current survey as a JSON snapshot.
type SurveyProjectRepository interface {
	// Save overwrites the snapshot.
	Save(ctx context.Context, project models.SurveyProject) error
	// Load returns apperrors.ErrNotFound when no survey has been set up.
	Load(ctx context.Context) (*models.SurveyProject, error)
	Clear(ctx context.Context) error
}

type surveyProjectRepository struct {
	db *database.DB
}

// NewSurveyProjectRepository creates a repository backed by the kv_snapshot table.
func NewSurveyProjectRepository(db *database.DB) SurveyProjectRepository {
	return &surveyProjectRepository{db: db}
}

func (r *surveyProjectRepository) Save(ctx context.Context, project models.SurveyProject) error {
	value, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal survey project: %w", err)
	}

	query := `
		INSERT INTO kv_snapshot (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, SurveyProjectKey, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save survey project: %w", err)
	}
	return nil
}

func (r *surveyProjectRepository) Load(ctx context.Context) (*models.SurveyProject, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_snapshot WHERE key = ?`, SurveyProjectKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load survey project: %w", err)
	}

	var project models.SurveyProject
	if err := json.Unmarshal(value, &project); err != nil {
		return nil, fmt.Errorf("failed to unmarshal survey project: %w", err)
	}
	return &project, nil
}

func (r *surveyProjectRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_snapshot WHERE key = ?`, SurveyProjectKey); err != nil {
		return fmt.Errorf("failed to clear survey project: %w", err)
	}
	return nil
}
