package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/natsort"
	"github.com/evanterry/surveyor/pkg/repositories"
)

// QuestionRow is a question list entry with local state attached.
type QuestionRow struct {
	Item models.QuestionListItem

	// HasBarrier is set once a barrier was submitted for the question.
	HasBarrier bool
	// Selectable is false for items without an id; they are listed but cannot be opened.
	Selectable bool
}

// QuestionService lists questions and fetches their details.
type QuestionService interface {
	// List returns questions in natural order of their numbers.
	List(ctx context.Context, project, standard, form string) ([]QuestionRow, error)
	// Detail fails with apperrors.ErrMissingQuestionID for id-less items.
	Detail(ctx context.Context, item models.QuestionListItem) (*models.QuestionDetail, error)
}

type questionService struct {
	api      SurveyAPI
	barriers repositories.BarrierRepository
	logger   *zap.Logger
}

var _ QuestionService = (*questionService)(nil)

// NewQuestionService creates a question service.
func NewQuestionService(api SurveyAPI, barriers repositories.BarrierRepository, logger *zap.Logger) QuestionService {
	return &questionService{
		api:      api,
		barriers: barriers,
		logger:   logger.Named("questions"),
	}
}

func (s *questionService) List(ctx context.Context, project, standard, form string) ([]QuestionRow, error) {
	items, err := s.api.ListQuestions(ctx, project, standard, form)
	if err != nil {
		return nil, err
	}
	natsort.SortFunc(items, func(q models.QuestionListItem) string { return q.Number })

	recorded, err := s.barriers.Set(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recorded barriers: %w", err)
	}

	rows := make([]QuestionRow, 0, len(items))
	missing := 0
	for _, item := range items {
		row := QuestionRow{Item: item}
		if id, err := item.QuestionID(); err == nil {
			_, row.HasBarrier = recorded[id]
			row.Selectable = true
		} else {
			missing++
		}
		rows = append(rows, row)
	}

	if missing > 0 {
		s.logger.Warn("Questions without an id cannot be selected",
			zap.String("form", form),
			zap.Int("count", missing))
	}
	return rows, nil
}

func (s *questionService) Detail(ctx context.Context, item models.QuestionListItem) (*models.QuestionDetail, error) {
	id, err := item.QuestionID()
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", item.Number, err)
	}
	return s.api.GetQuestionDetail(ctx, id)
}
