// Package wizard holds the two-step survey setup: choose the site, then schedule the
// survey with its team. Only a completed builder yields a SurveyProject.
package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/models"
)

// Step is the next action a Builder expects.
type Step int

const (
	StepSite Step = iota
	StepSchedule
	StepConfirm
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSite:
		return "site"
	case StepSchedule:
		return "schedule"
	case StepConfirm:
		return "confirm"
	case StepDone:
		return "done"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// TeamSeparator joins team member names in the stored survey.
const TeamSeparator = ", "

// Builder accumulates setup choices in order.
type Builder struct {
	step    Step
	project models.SurveyProject
}

// New starts an empty setup.
func New() *Builder {
	return &Builder{step: StepSite}
}

// Edit starts a setup pre-filled from an existing survey. Steps restart at site
// selection; the previous values are available through Draft until replaced.
func Edit(existing models.SurveyProject) *Builder {
	return &Builder{step: StepSite, project: existing}
}

// Step reports what the builder expects next.
func (b *Builder) Step() Step {
	return b.step
}

// Draft returns the values gathered so far.
func (b *Builder) Draft() models.SurveyProject {
	return b.project
}

// SelectSite records where the survey takes place. The site supplies the standard and
// cost factor.
func (b *Builder) SelectSite(project, campus string, site models.Site) error {
	if err := b.expect(StepSite); err != nil {
		return err
	}
	if err := required(
		[2]string{"project", project},
		[2]string{"campus", campus},
		[2]string{"site id", site.UNID},
	); err != nil {
		return err
	}

	b.project = models.SurveyProject{
		Project:    project,
		Campus:     campus,
		Site:       site.Name,
		UNID:       site.UNID,
		Standard:   site.Standard,
		CostFactor: site.CostFactor.String(),
	}
	b.step = StepSchedule
	return nil
}

// Schedule records the survey date, lead and team. Blank team names are dropped.
func (b *Builder) Schedule(date time.Time, teamLead string, team []string) error {
	if err := b.expect(StepSchedule); err != nil {
		return err
	}
	teamLead = strings.TrimSpace(teamLead)
	if err := required([2]string{"team lead", teamLead}); err != nil {
		return err
	}
	if date.IsZero() {
		return fmt.Errorf("%w: survey date is required", apperrors.ErrWizardStep)
	}

	members := make([]string, 0, len(team))
	for _, name := range team {
		if name = strings.TrimSpace(name); name != "" {
			members = append(members, name)
		}
	}
	joined := strings.Join(members, TeamSeparator)

	b.project.SurveyDate = &date
	b.project.TeamLead = &teamLead
	b.project.Team = &joined
	b.step = StepConfirm
	return nil
}

// Build finishes the setup. It can be called once.
func (b *Builder) Build() (models.SurveyProject, error) {
	if err := b.expect(StepConfirm); err != nil {
		return models.SurveyProject{}, err
	}
	b.step = StepDone
	return b.project, nil
}

func (b *Builder) expect(step Step) error {
	if b.step != step {
		return fmt.Errorf("%w: expected %s, at %s", apperrors.ErrWizardStep, step, b.step)
	}
	return nil
}

// required checks {name, value} pairs in order.
func required(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return fmt.Errorf("%w: %s is required", apperrors.ErrWizardStep, f[0])
		}
	}
	return nil
}
