package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/wizard"
)

// DateLayout is the survey date format accepted by setup.
const DateLayout = "2006-01-02"

var errNoSurvey = errors.New("no survey selected; run setup first")

func (s *session) projectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List survey projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := s.app.Setup.Projects(cmd.Context())
			if err != nil {
				return err
			}
			t := Table{Header: []string{"NUMBER", "NAME"}, Noun: "project"}
			for _, p := range projects {
				t.Rows = append(t.Rows, []string{p.Number, p.Name})
			}
			return s.out.Print(projects, t)
		},
	}
}

func (s *session) campusesCommand() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "campuses",
		Short: "List the campuses of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			campuses, err := s.app.Setup.Campuses(cmd.Context(), project)
			if err != nil {
				return err
			}
			t := Table{Header: []string{"CAMPUS"}, Noun: "campus"}
			for _, c := range campuses {
				t.Rows = append(t.Rows, []string{c.Name})
			}
			return s.out.Print(campuses, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func (s *session) sitesCommand() *cobra.Command {
	var project, campus string
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the sites of a campus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sites, err := s.app.Setup.Sites(cmd.Context(), project, campus)
			if err != nil {
				return err
			}
			t := Table{Header: []string{"UNID", "SITE", "STANDARD", "COST FACTOR"}, Noun: "site"}
			for _, site := range sites {
				t.Rows = append(t.Rows, []string{site.UNID, site.Name, site.Standard, site.CostFactor.String()})
			}
			return s.out.Print(sites, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number")
	cmd.Flags().StringVar(&campus, "campus", "", "Campus name")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("campus")
	return cmd
}

func (s *session) teamCommand() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "team",
		Short: "List the team members of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			team, err := s.app.Setup.TeamMembers(cmd.Context(), project)
			if err != nil {
				return err
			}
			t := Table{Header: []string{"MEMBER"}, Noun: "team member"}
			for _, name := range team {
				t.Rows = append(t.Rows, []string{name})
			}
			return s.out.Print(team, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func (s *session) standardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List accessibility standards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			standards, err := s.app.Setup.Standards(cmd.Context())
			if err != nil {
				return err
			}
			t := Table{Header: []string{"STATE", "STANDARD"}, Noun: "standard"}
			for _, st := range standards {
				t.Rows = append(t.Rows, []string{st.State, st.Code})
			}
			return s.out.Print(standards, t)
		},
	}
}

func (s *session) formsCommand() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "List question forms (current survey's project by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var forms []models.Form
			var err error
			if project != "" {
				forms, err = s.app.Client.ListForms(ctx, project)
			} else {
				forms, err = s.app.Setup.Forms(ctx)
			}
			if err != nil {
				return noSurvey(err)
			}
			t := Table{Header: []string{"CODE", "NAME"}, Noun: "form"}
			for _, f := range forms {
				t.Rows = append(t.Rows, []string{f.Code, f.Name})
			}
			return s.out.Print(forms, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number")
	return cmd
}

func (s *session) useCodesCommand() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "use-codes",
		Short: "List facility use codes (current survey's project by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var codes []string
			if project != "" {
				raw, err := s.app.Client.ListUseCodes(ctx, project)
				if err != nil {
					return err
				}
				codes = models.UseCodeValues(raw)
			} else {
				var err error
				if codes, err = s.app.Setup.UseCodes(ctx); err != nil {
					return noSurvey(err)
				}
			}
			t := Table{Header: []string{"CODE"}, Noun: "use code"}
			for _, c := range codes {
				t.Rows = append(t.Rows, []string{c})
			}
			return s.out.Print(codes, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number")
	return cmd
}

func (s *session) setupCommand() *cobra.Command {
	var project, campus, siteRef, date, lead string
	var team []string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Select the survey site, date and team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := s.app.Logger.Named("setup")

			surveyDate := time.Now()
			if date != "" {
				var err error
				if surveyDate, err = time.ParseInLocation(DateLayout, date, time.Local); err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
				}
			}
			y, m, d := surveyDate.Date()
			surveyDate = time.Date(y, m, d, 0, 0, 0, 0, time.Local)

			sites, err := s.app.Setup.Sites(ctx, project, campus)
			if err != nil {
				return err
			}
			site, err := findSite(sites, siteRef)
			if err != nil {
				return err
			}

			members, err := s.app.Setup.TeamMembers(ctx, project)
			if err != nil {
				return err
			}
			if len(team) == 0 {
				team = []string{lead}
			}
			if len(members) > 0 {
				for _, name := range append([]string{lead}, team...) {
					if !slices.Contains(members, strings.TrimSpace(name)) {
						return fmt.Errorf("%q is not on the team of project %s", name, project)
					}
				}
			}

			b := wizard.New()
			current, err := s.app.Setup.Current(ctx)
			switch {
			case err == nil:
				logger.Info("Replacing current survey", zap.String("unid", current.UNID))
				b = wizard.Edit(*current)
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}

			if err := b.SelectSite(project, campus, site); err != nil {
				return err
			}
			if err := b.Schedule(surveyDate, lead, team); err != nil {
				return err
			}
			survey, err := s.app.Setup.Confirm(ctx, b)
			if err != nil {
				return err
			}
			return s.out.Print(survey, surveyTable(*survey))
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number")
	cmd.Flags().StringVar(&campus, "campus", "", "Campus name")
	cmd.Flags().StringVar(&siteRef, "site", "", "Site UNID or name")
	cmd.Flags().StringVar(&date, "date", "", "Survey date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&lead, "lead", "", "Team lead")
	cmd.Flags().StringSliceVar(&team, "team", nil, "Team members (default the lead)")
	for _, name := range []string{"project", "campus", "site", "lead"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (s *session) surveyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "survey",
		Short: "Show the current survey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			survey, err := s.app.Setup.Current(cmd.Context())
			if err != nil {
				return noSurvey(err)
			}
			return s.out.Print(survey, surveyTable(*survey))
		},
	}
}

// currentSurvey returns the confirmed survey with a hint when there is none.
func (s *session) currentSurvey(cmd *cobra.Command) (*models.SurveyProject, error) {
	survey, err := s.app.Setup.Current(cmd.Context())
	if err != nil {
		return nil, noSurvey(err)
	}
	return survey, nil
}

func noSurvey(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return errNoSurvey
	}
	return err
}

// findSite matches a site by UNID first, then case-insensitively by name.
func findSite(sites []models.Site, ref string) (models.Site, error) {
	ref = strings.TrimSpace(ref)
	for _, site := range sites {
		if site.UNID == ref {
			return site, nil
		}
	}
	for _, site := range sites {
		if strings.EqualFold(site.Name, ref) {
			return site, nil
		}
	}
	return models.Site{}, fmt.Errorf("site %q not found", ref)
}

func surveyLabel(p models.SurveyProject) string {
	return strings.Join([]string{p.Project, p.Campus, p.Site}, " / ")
}

func surveyTable(p models.SurveyProject) Table {
	var date string
	if p.SurveyDate != nil {
		date = p.SurveyDate.Format(DateLayout)
	}
	return Record(
		[2]string{"Project", p.Project},
		[2]string{"Campus", p.Campus},
		[2]string{"Site", p.Site},
		[2]string{"UNID", p.UNID},
		[2]string{"Standard", p.Standard},
		[2]string{"Cost factor", p.CostFactor},
		[2]string{"Date", date},
		[2]string{"Team lead", deref(p.TeamLead)},
		[2]string{"Team", deref(p.Team)},
	)
}
