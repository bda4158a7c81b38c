package surveyapi

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/models"
)

// Backend paths. Case matters: the projects view lives under "Surveyors.nsf".
const (
	pathProjects       = "/evanterry/Surveyors.nsf/xpActiveProjects.xsp"
	pathCampuses       = "/master/surveyquestionstplt.nsf/xpCampusListByProject.xsp"
	pathSites          = "/master/surveyquestionstplt.nsf/xpSitesListByProjectCampus.xsp"
	pathTeamMembers    = "/evanterry/surveyors.nsf/xpTeamMembers.xsp"
	pathStandards      = "/evanterry/surveyors.nsf/xpSurveyStandards.xsp"
	pathForms          = "/evanterry/surveyors.nsf/xpSurveyForms.xsp"
	pathQuestions      = "/master/surveyquestionstplt.nsf/QuestionsListJSONv1.xsp"
	pathQuestionDetail = "/master/surveyquestionstplt.nsf/QuestionDetailsByIDKeyJSONv1.xsp"
	pathUseCodes       = "/evanterry/surveyors.nsf/xpUseCodesProject.xsp"
	pathSolutions      = "/PSRevisions.nsf/xpSolutionsByProjectStandardType.xsp"
)

// ListProjects returns the active projects.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	endpoint, err := c.buildURL("projects", pathProjects)
	if err != nil {
		return nil, err
	}
	return getList[models.Project](ctx, c, "projects", endpoint)
}

// ListCampuses returns the campuses of a project.
func (c *Client) ListCampuses(ctx context.Context, project string) ([]models.Campus, error) {
	endpoint, err := c.buildURL("campuses", pathCampuses, param{"prj", project})
	if err != nil {
		return nil, err
	}
	return getList[models.Campus](ctx, c, "campuses", endpoint)
}

// ListSites returns the sites of a project campus.
func (c *Client) ListSites(ctx context.Context, project, campus string) ([]models.Site, error) {
	endpoint, err := c.buildURL("sites", pathSites, param{"prj", project}, param{"campus", campus})
	if err != nil {
		return nil, err
	}
	return getList[models.Site](ctx, c, "sites", endpoint)
}

// ListTeamMembers returns the names of the project's team.
func (c *Client) ListTeamMembers(ctx context.Context, project string) ([]string, error) {
	endpoint, err := c.buildURL("team members", pathTeamMembers, param{"ID", project})
	if err != nil {
		return nil, err
	}

	var resp models.TeamResponse
	if err := c.getJSON(ctx, "team members", endpoint, &resp); err != nil {
		return nil, err
	}
	c.logger.Info("Fetched team members", zap.Int("count", len(resp.Team)))
	return resp.Team, nil
}

// ListStandards returns the standards a survey can be conducted under.
func (c *Client) ListStandards(ctx context.Context) ([]models.Standard, error) {
	endpoint, err := c.buildURL("standards", pathStandards)
	if err != nil {
		return nil, err
	}
	return getList[models.Standard](ctx, c, "standards", endpoint)
}

// ListForms returns the question forms available to a project.
func (c *Client) ListForms(ctx context.Context, project string) ([]models.Form, error) {
	endpoint, err := c.buildURL("forms", pathForms, param{"ID", project})
	if err != nil {
		return nil, err
	}
	return getList[models.Form](ctx, c, "forms", endpoint)
}

// ListQuestions returns the question list for a form, in backend order.
func (c *Client) ListQuestions(ctx context.Context, project, standard, form string) ([]models.QuestionListItem, error) {
	endpoint, err := c.buildURL("questions", pathQuestions,
		param{"prj", project}, param{"std", standard}, param{"form", form})
	if err != nil {
		return nil, err
	}
	return getList[models.QuestionListItem](ctx, c, "questions", endpoint)
}

// GetQuestionDetail fetches one question. The backend answers with an array; the first
// element is the question and an empty array is ErrNoData.
func (c *Client) GetQuestionDetail(ctx context.Context, questionID string) (*models.QuestionDetail, error) {
	const op = "question detail"
	endpoint, err := c.buildURL(op, pathQuestionDetail, param{"ID", questionID})
	if err != nil {
		return nil, err
	}

	var details []models.QuestionDetail
	if err := c.getJSON(ctx, op, endpoint, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("%s %s: %w", op, questionID, apperrors.ErrNoData)
	}
	return &details[0], nil
}

// ListUseCodes returns the facility-use codes of a project.
func (c *Client) ListUseCodes(ctx context.Context, project string) ([]models.UseCode, error) {
	endpoint, err := c.buildURL("use codes", pathUseCodes, param{"ID", project})
	if err != nil {
		return nil, err
	}
	return getList[models.UseCode](ctx, c, "use codes", endpoint)
}

// ListSolutions returns the remediation options for a question type, sorted by
// solution code (plain byte order, stable).
func (c *Client) ListSolutions(ctx context.Context, project, standard, questionType string) ([]models.Solution, error) {
	endpoint, err := c.buildURL("solutions", pathSolutions,
		param{"prj", project}, param{"std", standard}, param{"type", questionType})
	if err != nil {
		return nil, err
	}

	solutions, err := getList[models.Solution](ctx, c, "solutions", endpoint)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(solutions, func(a, b models.Solution) int {
		return strings.Compare(a.Code, b.Code)
	})
	return solutions, nil
}
