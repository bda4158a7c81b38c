package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/cost"
	"github.com/evanterry/surveyor/pkg/models"
)

type quoteView struct {
	Solution   string `json:"solution,omitempty"`
	UnitCost   string `json:"unitCost"`
	UnitType   string `json:"unitType"`
	Units      int    `json:"units"`
	CostFactor string `json:"costFactor"`
	NoCost     bool   `json:"noCost"`
	Amount     string `json:"amount"`
	Submitted  string `json:"submittedAmount"`
}

func (s *session) solutionsCommand() *cobra.Command {
	var project, standard, questionType string
	cmd := &cobra.Command{
		Use:   "solutions",
		Short: "List remediation solutions for a question type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.surveyScope(cmd, &project, &standard); err != nil {
				return err
			}
			solutions, err := s.app.Solutions.List(cmd.Context(), project, standard, questionType)
			if err != nil {
				return err
			}
			t := Table{Header: []string{"CODE", "SOLUTION", "UNIT COST", "UNIT TYPE"}, Noun: "solution"}
			for _, sol := range solutions {
				unitCost := cost.NoCostLabel
				if !sol.IsNoCost() {
					unitCost = cost.FormatCurrency(sol.UnitCostDecimal())
				}
				t.Rows = append(t.Rows, []string{sol.Code, sol.DisplayTitle(), unitCost, sol.UnitType})
			}
			return s.out.Print(solutions, t)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project number (default current survey)")
	cmd.Flags().StringVar(&standard, "standard", "", "Standard code (default current survey)")
	cmd.Flags().StringVar(&questionType, "type", "", "Question type")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (s *session) quoteCommand() *cobra.Command {
	var (
		unitCost, unitType, units, costFactor, override string
		code, project, standard, questionType          string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a solution: unit cost x units x cost factor",
		Long: "Price a solution. Pass --unit-cost and --unit-type directly, or --solution with\n" +
			"--type to look the solution up. The cost factor defaults to the current survey's.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			solution := models.Solution{UnitCost: unitCost, UnitType: unitType}

			if code != "" {
				if err := s.surveyScope(cmd, &project, &standard); err != nil {
					return err
				}
				solutions, err := s.app.Solutions.List(ctx, project, standard, questionType)
				if err != nil {
					return err
				}
				found := false
				for _, sol := range solutions {
					if sol.Code == code {
						solution, found = sol, true
						break
					}
				}
				if !found {
					return fmt.Errorf("solution %q not found", code)
				}
			}

			if !cmd.Flags().Changed("cost-factor") {
				survey, err := s.app.Setup.Current(ctx)
				switch {
				case err == nil:
					costFactor = survey.CostFactor
				case !errors.Is(err, apperrors.ErrNotFound):
					return err
				}
			}

			q, err := s.app.Solutions.Quote(solution, units, costFactor)
			if err != nil {
				return err
			}

			view := quoteView{
				Solution:   solution.Code,
				UnitCost:   cost.FormatCurrency(q.UnitCost),
				UnitType:   solution.UnitType,
				Units:      q.Units,
				CostFactor: q.CostFactor.String(),
				NoCost:     q.NoCost,
				Amount:     q.Display(),
				Submitted:  cost.SubmissionAmount(q, override),
			}
			pairs := [][2]string{
				{"Unit cost", view.UnitCost},
				{"Unit type", view.UnitType},
				{"Units", strconv.Itoa(view.Units)},
				{"Cost factor", view.CostFactor},
				{"Amount", view.Amount},
			}
			if override != "" {
				pairs = append(pairs, [2]string{"Override", view.Submitted})
			}
			if view.Solution != "" {
				pairs = append([][2]string{{"Solution", view.Solution}}, pairs...)
			}
			return s.out.Print(view, Record(pairs...))
		},
	}
	cmd.Flags().StringVar(&unitCost, "unit-cost", "", "Unit cost")
	cmd.Flags().StringVar(&unitType, "unit-type", "", "Unit type (n/a for unpriced)")
	cmd.Flags().StringVar(&units, "units", "", "Units (default 1, or 0 for n/a)")
	cmd.Flags().StringVar(&costFactor, "cost-factor", "1", "Site cost factor")
	cmd.Flags().StringVar(&override, "override", "", "Manual amount replacing the computed one")
	cmd.Flags().StringVar(&code, "solution", "", "Solution code to look up")
	cmd.Flags().StringVar(&project, "project", "", "Project number for --solution (default current survey)")
	cmd.Flags().StringVar(&standard, "standard", "", "Standard code for --solution (default current survey)")
	cmd.Flags().StringVar(&questionType, "type", "", "Question type for --solution")
	cmd.MarkFlagsMutuallyExclusive("solution", "unit-cost")
	cmd.MarkFlagsRequiredTogether("solution", "type")
	return cmd
}

func (s *session) overrideCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "override <amount>",
		Short: "Normalise a manually entered amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := cost.NormalizeOverride(args[0])
			return s.out.Print(map[string]string{"amount": amount}, Table{Rows: [][]string{{amount}}})
		},
	}
}
