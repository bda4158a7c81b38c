package services

import (
	"context"

	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/surveyapi"
)

// SurveyAPI is the part of the backend client the services depend on.
type SurveyAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListCampuses(ctx context.Context, project string) ([]models.Campus, error)
	ListSites(ctx context.Context, project, campus string) ([]models.Site, error)
	ListTeamMembers(ctx context.Context, project string) ([]string, error)
	ListStandards(ctx context.Context) ([]models.Standard, error)
	ListForms(ctx context.Context, project string) ([]models.Form, error)
	ListQuestions(ctx context.Context, project, standard, form string) ([]models.QuestionListItem, error)
	GetQuestionDetail(ctx context.Context, questionID string) (*models.QuestionDetail, error)
	ListUseCodes(ctx context.Context, project string) ([]models.UseCode, error)
	ListSolutions(ctx context.Context, project, standard, questionType string) ([]models.Solution, error)
	SubmitBarrier(ctx context.Context, b models.Barrier) error
}

var _ SurveyAPI = (*surveyapi.Client)(nil)
