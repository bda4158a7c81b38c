package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/audit"
	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/services"
)

type submissionView struct {
	SubmissionID string `json:"submissionId"`
	QuestionID   string `json:"questionId"`
	Photos       int    `json:"photos"`
}

func (s *session) barrierCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barrier",
		Short: "Record barriers",
	}
	cmd.AddCommand(s.barrierSubmitCommand())
	return cmd
}

func (s *session) barrierSubmitCommand() *cobra.Command {
	var in services.BarrierInput
	var photoPaths []string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a barrier for a question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var total uint64
			for _, path := range photoPaths {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read photo: %w", err)
				}
				total += uint64(len(data))
				in.Photos = append(in.Photos, data)
			}
			if len(photoPaths) > 0 {
				s.app.Logger.Debug("Read photos",
					zap.Int("count", len(photoPaths)),
					zap.String("size", humanize.Bytes(total)))
			}

			ctx := cmd.Context()
			id, err := s.app.Barriers.Submit(ctx, in)
			if id != "" {
				username, _ := s.app.Client.Username(ctx)
				s.app.Auditor.LogBarrierSubmitted(s.app.Client.BaseURL(), username, audit.BarrierDetails{
					SubmissionID: id,
					QuestionID:   in.QuestionID,
					Photos:       len(in.Photos),
				})
			}
			if err != nil {
				return err
			}
			view := submissionView{SubmissionID: id, QuestionID: in.QuestionID, Photos: len(in.Photos)}
			return s.out.Print(view, Record(
				[2]string{"Submission", view.SubmissionID},
				[2]string{"Question", view.QuestionID},
				[2]string{"Photos", Count(view.Photos, "photo")},
			))
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.QuestionID, "question", "", "Question id")
	f.StringVar(&in.Location, "location", "", "Where the barrier is")
	f.StringVar(&in.UseCode, "use-code", "", "Facility use code")
	f.StringVar(&in.DOJCode, "doj", "", "DOJ priority ("+strings.Join(models.DOJCodes, ", ")+")")
	f.StringVar(&in.SeverityCode, "severity", "", "Severity ("+strings.Join(models.SeverityCodes, ", ")+")")
	f.StringVar(&in.ExistingCondition, "condition", "", "Existing condition")
	f.StringVar(&in.SurveyorNotes, "notes", "", "Surveyor notes")
	f.StringArrayVar(&photoPaths, "photo", nil, "JPEG photo file (repeatable)")
	for _, name := range []string{"question", "location", "use-code", "doj", "severity", "condition"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (s *session) barriersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "barriers",
		Short: "List questions with a submitted barrier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := s.app.Barriers.Recorded(cmd.Context())
			if err != nil {
				return err
			}
			t := Table{Header: []string{"QUESTION ID"}, Noun: "barrier"}
			for _, id := range ids {
				t.Rows = append(t.Rows, []string{id})
			}
			return s.out.Print(ids, t)
		},
	}
}
