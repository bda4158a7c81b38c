package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/repositories"
	"github.com/evanterry/surveyor/pkg/wizard"
)

// SurveySetupService drives survey selection and keeps the current survey.
type SurveySetupService interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Campuses(ctx context.Context, project string) ([]models.Campus, error)
	Sites(ctx context.Context, project, campus string) ([]models.Site, error)
	TeamMembers(ctx context.Context, project string) ([]string, error)
	Standards(ctx context.Context) ([]models.Standard, error)

	// Forms lists the forms of the current survey's project.
	Forms(ctx context.Context) ([]models.Form, error)
	// UseCodes lists the current project's use codes, sorted for picking.
	UseCodes(ctx context.Context) ([]string, error)

	// Confirm builds the survey and saves it. Nothing is stored if the builder is incomplete.
	Confirm(ctx context.Context, b *wizard.Builder) (*models.SurveyProject, error)
	// Current returns apperrors.ErrNotFound until a survey is confirmed.
	Current(ctx context.Context) (*models.SurveyProject, error)
}

type surveySetupService struct {
	api    SurveyAPI
	repo   repositories.SurveyProjectRepository
	logger *zap.Logger
}

var _ SurveySetupService = (*surveySetupService)(nil)

// NewSurveySetupService creates a setup service.
func NewSurveySetupService(api SurveyAPI, repo repositories.SurveyProjectRepository, logger *zap.Logger) SurveySetupService {
	return &surveySetupService{
		api:    api,
		repo:   repo,
		logger: logger.Named("survey-setup"),
	}
}

func (s *surveySetupService) Projects(ctx context.Context) ([]models.Project, error) {
	return s.api.ListProjects(ctx)
}

func (s *surveySetupService) Campuses(ctx context.Context, project string) ([]models.Campus, error) {
	return s.api.ListCampuses(ctx, project)
}

func (s *surveySetupService) Sites(ctx context.Context, project, campus string) ([]models.Site, error) {
	return s.api.ListSites(ctx, project, campus)
}

func (s *surveySetupService) TeamMembers(ctx context.Context, project string) ([]string, error) {
	return s.api.ListTeamMembers(ctx, project)
}

func (s *surveySetupService) Standards(ctx context.Context) ([]models.Standard, error) {
	return s.api.ListStandards(ctx)
}

func (s *surveySetupService) Forms(ctx context.Context) ([]models.Form, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.ListForms(ctx, current.Project)
}

func (s *surveySetupService) UseCodes(ctx context.Context) ([]string, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	codes, err := s.api.ListUseCodes(ctx, current.Project)
	if err != nil {
		return nil, err
	}
	return models.UseCodeValues(codes), nil
}

func (s *surveySetupService) Confirm(ctx context.Context, b *wizard.Builder) (*models.SurveyProject, error) {
	project, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save survey: %w", err)
	}

	s.logger.Info("Survey confirmed",
		zap.String("project", project.Project),
		zap.String("campus", project.Campus),
		zap.String("site_unid", project.UNID),
		zap.String("standard", project.Standard))
	return &project, nil
}

func (s *surveySetupService) Current(ctx context.Context) (*models.SurveyProject, error) {
	return s.repo.Load(ctx)
}
