package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/models"
)

type authStatus struct {
	BaseURL       string                `json:"baseUrl"`
	Username      string                `json:"username,omitempty"`
	Authenticated bool                  `json:"authenticated"`
	Survey        *models.SurveyProject `json:"survey,omitempty"`
}

func (a authStatus) table() Table {
	state := "signed out"
	if a.Authenticated {
		state = "signed in"
	}
	pairs := [][2]string{
		{"Server", a.BaseURL},
		{"Status", state},
	}
	if a.Username != "" {
		pairs = append(pairs, [2]string{"Username", a.Username})
	}
	if a.Survey != nil {
		pairs = append(pairs, [2]string{"Survey", surveyLabel(*a.Survey)})
	}
	return Record(pairs...)
}

func (s *session) loginCommand() *cobra.Command {
	var username, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the survey backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			ctx := cmd.Context()
			err := s.app.Client.Login(ctx, username, password)
			s.app.Auditor.LogLogin(s.app.Client.BaseURL(), username, err)
			if err != nil {
				return err
			}
			return s.out.Print(authStatus{
				BaseURL:       s.app.Client.BaseURL(),
				Username:      username,
				Authenticated: true,
			}.withTable())
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func (s *session) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			username, signedIn := s.app.Client.Username(ctx)
			if err := s.app.Client.Logout(ctx); err != nil {
				return err
			}
			if signedIn {
				s.app.Auditor.LogLogout(s.app.Client.BaseURL(), username)
			}
			return s.out.Print(authStatus{BaseURL: s.app.Client.BaseURL()}.withTable())
		},
	}
}

func (s *session) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sign-in state and the current survey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			status := authStatus{BaseURL: s.app.Client.BaseURL()}
			status.Username, status.Authenticated = s.app.Client.Username(ctx)

			survey, err := s.app.Setup.Current(ctx)
			switch {
			case err == nil:
				status.Survey = survey
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
			return s.out.Print(status.withTable())
		},
	}
}

func (a authStatus) withTable() (any, Table) {
	return a, a.table()
}
