package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/audit"
	"github.com/evanterry/surveyor/pkg/config"
	"github.com/evanterry/surveyor/pkg/credentials"
	"github.com/evanterry/surveyor/pkg/database"
	"github.com/evanterry/surveyor/pkg/repositories"
	"github.com/evanterry/surveyor/pkg/services"
	"github.com/evanterry/surveyor/pkg/surveyapi"
)

// App holds the wired dependencies shared by every command.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB     *database.DB
	Store  credentials.Store
	Client *surveyapi.Client

	Setup     services.SurveySetupService
	Questions services.QuestionService
	Solutions services.SolutionService
	Barriers  services.BarrierService

	Auditor *audit.SecurityAuditor
}

// NewApp opens local state and builds the API client and services.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store := credentials.NewFileStore(cfg.CredentialsFile, cfg.CredentialsKey, logger)

	client, err := surveyapi.NewClient(cfg.API.BaseURL, store, logger,
		surveyapi.WithBarrierPath(cfg.API.BarrierPath),
		surveyapi.WithTimeout(cfg.API.Timeout),
		surveyapi.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	db, err := database.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local state: %w", err)
	}

	surveys := repositories.NewSurveyProjectRepository(db)
	barriers := repositories.NewBarrierRepository(db)

	return &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Store:     store,
		Client:    client,
		Setup:     services.NewSurveySetupService(client, surveys, logger),
		Questions: services.NewQuestionService(client, barriers, logger),
		Solutions: services.NewSolutionService(client, logger),
		Barriers:  services.NewBarrierService(client, barriers, logger),
		Auditor:   audit.NewSecurityAuditor(logger),
	}, nil
}

// Close releases local state.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
