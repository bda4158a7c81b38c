package services

import (
	"context"
	"errors"

	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/surveyapi"
)

// mockAPI is a canned SurveyAPI. Zero values answer with empty results.
type mockAPI struct {
	projects  []models.Project
	campuses  []models.Campus
	sites     []models.Site
	team      []string
	standards []models.Standard
	forms     []models.Form
	questions []models.QuestionListItem
	details   map[string]*models.QuestionDetail
	useCodes  []models.UseCode
	solutions []models.Solution

	err       error
	submitErr error

	calls          []string
	submitted      []models.Barrier
	submitRequests []string
}

var errBackendDown = errors.New("backend down")

func (m *mockAPI) called(name string) error {
	m.calls = append(m.calls, name)
	return m.err
}

func (m *mockAPI) ListProjects(context.Context) ([]models.Project, error) {
	return m.projects, m.called("projects")
}

func (m *mockAPI) ListCampuses(_ context.Context, project string) ([]models.Campus, error) {
	return m.campuses, m.called("campuses:" + project)
}

func (m *mockAPI) ListSites(_ context.Context, project, campus string) ([]models.Site, error) {
	return m.sites, m.called("sites:" + project + "/" + campus)
}

func (m *mockAPI) ListTeamMembers(_ context.Context, project string) ([]string, error) {
	return m.team, m.called("team:" + project)
}

func (m *mockAPI) ListStandards(context.Context) ([]models.Standard, error) {
	return m.standards, m.called("standards")
}

func (m *mockAPI) ListForms(_ context.Context, project string) ([]models.Form, error) {
	return m.forms, m.called("forms:" + project)
}

func (m *mockAPI) ListQuestions(_ context.Context, project, standard, form string) ([]models.QuestionListItem, error) {
	if err := m.called("questions:" + project + "/" + standard + "/" + form); err != nil {
		return nil, err
	}
	return append([]models.QuestionListItem(nil), m.questions...), nil
}

func (m *mockAPI) GetQuestionDetail(_ context.Context, questionID string) (*models.QuestionDetail, error) {
	if err := m.called("detail:" + questionID); err != nil {
		return nil, err
	}
	return m.details[questionID], nil
}

func (m *mockAPI) ListUseCodes(_ context.Context, project string) ([]models.UseCode, error) {
	return m.useCodes, m.called("use-codes:" + project)
}

func (m *mockAPI) ListSolutions(_ context.Context, project, standard, questionType string) ([]models.Solution, error) {
	return m.solutions, m.called("solutions:" + project + "/" + standard + "/" + questionType)
}

func (m *mockAPI) SubmitBarrier(ctx context.Context, b models.Barrier) error {
	m.calls = append(m.calls, "submit:"+b.QuestionID)
	m.submitRequests = append(m.submitRequests, requestIDOf(ctx))
	if m.submitErr != nil {
		return m.submitErr
	}
	m.submitted = append(m.submitted, b)
	return nil
}

func requestIDOf(ctx context.Context) string {
	id, _ := surveyapi.RequestIDFromContext(ctx)
	return id
}
