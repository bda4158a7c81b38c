package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/cost"
	"github.com/evanterry/surveyor/pkg/models"
)

// SolutionService lists remediation options and prices them.
type SolutionService interface {
	List(ctx context.Context, project, standard, questionType string) ([]models.Solution, error)
	// Quote prices solution for the entered units under the site's cost factor.
	Quote(solution models.Solution, unitsText, costFactor string) (cost.Quote, error)
}

type solutionService struct {
	api    SurveyAPI
	logger *zap.Logger
}

var _ SolutionService = (*solutionService)(nil)

// NewSolutionService creates a solution service.
func NewSolutionService(api SurveyAPI, logger *zap.Logger) SolutionService {
	return &solutionService{
		api:    api,
		logger: logger.Named("solutions"),
	}
}

func (s *solutionService) List(ctx context.Context, project, standard, questionType string) ([]models.Solution, error) {
	return s.api.ListSolutions(ctx, project, standard, questionType)
}

func (s *solutionService) Quote(solution models.Solution, unitsText, costFactor string) (cost.Quote, error) {
	units, err := cost.ParseUnits(unitsText, solution)
	if err != nil {
		return cost.Quote{}, err
	}

	q, err := cost.Calculate(solution, units, cost.ParseCostFactor(costFactor))
	if err != nil {
		return cost.Quote{}, err
	}

	s.logger.Debug("Quoted solution",
		zap.String("solution", solution.Code),
		zap.Int("units", units),
		zap.String("cost_factor", q.CostFactor.String()),
		zap.String("amount", q.Display()))
	return q, nil
}
