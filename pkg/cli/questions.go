package cli

import (
	"github.com/spf13/cobra"

	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/services"
)

type questionView struct {
	models.QuestionListItem
	HasBarrier bool `json:"hasBarrier"`
	Selectable bool `json:"selectable"`
}

// surveyScope fills project and standard from the current survey when they were not given.
func (s *session) surveyScope(cmd *cobra.Command, project, standard *string) error {
	if *project != "" && *standard != "" {
		return nil
	}
	survey, err := s.currentSurvey(cmd)
	if err != nil {
		return err
	}
	if *project == "" {
		*project = survey.Project
	}
	if *standard == "" {
		*standard = survey.Standard
	}
	return nil
}

func (s *session) questionsCommand() *cobra.Command {
	var project, standard, form string
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the questions of a form in question-number order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.surveyScope(cmd, &project, &standard); err != nil {
				return err
			}
			rows, err := s.app.Questions.List(cmd.Context(), project, standard, form)
			if err != nil {
				return err
			}
			views, t := questionTable(rows)
			return s.out.Print(views, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number (default current survey)")
	cmd.Flags().StringVar(&standard, "standard", "", "Standard code (default current survey)")
	cmd.Flags().StringVar(&form, "form", "", "Form code")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func questionTable(rows []services.QuestionRow) ([]questionView, Table) {
	views := make([]questionView, 0, len(rows))
	t := Table{Header: []string{"NUMBER", "QUESTION", "TYPE", "BARRIER", "ID"}, Noun: "question"}
	for _, r := range rows {
		// rows arrive sorted on the raw numbers; decode only for display
		item := r.Item.Display()
		views = append(views, questionView{QuestionListItem: item, HasBarrier: r.HasBarrier, Selectable: r.Selectable})

		kind := item.Type
		switch {
		case item.IsHeader():
			kind = "header"
		case item.IsSubHeader():
			kind = "subheader"
		}
		text := item.Shortform
		if text == "" {
			text = item.Text
		}
		if item.IsStricter() {
			text += " (stricter: " + item.StricterState + ")"
		}
		barrier := ""
		if r.HasBarrier {
			barrier = "yes"
		}
		t.Rows = append(t.Rows, []string{item.Number, text, kind, barrier, deref(item.ID)})
	}
	return views, t
}

func (s *session) questionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "question <id>",
		Short: "Show the details of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			raw, err := s.app.Questions.Detail(cmd.Context(), models.QuestionListItem{ID: &id})
			if err != nil {
				return err
			}
			detail := raw.Display()
			return s.out.Print(detail, Record(
				[2]string{"Number", detail.Number},
				[2]string{"AC code", deref(detail.ACCode)},
				[2]string{"Disability type", detail.DisabilityType},
				[2]string{"Question", detail.BarrierQuestion},
				[2]string{"Interpretation", deref(detail.Interpretation)},
				[2]string{"Note to surveyor", deref(detail.NoteToSurveyor)},
				[2]string{"Acceptable measurement", deref(detail.AcceptableMeasurement)},
				[2]string{"Desired information", detail.DesiredInformation},
				[2]string{"Section", deref(detail.SectionNumber)},
				[2]string{"Figure", deref(detail.FigureNumber)},
				[2]string{"Code reference", deref(detail.CodeReference)},
				[2]string{"Corada reference", deref(detail.CoradaReference)},
			))
		},
	}
}
