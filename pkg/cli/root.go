// Package cli implements the surveyor command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/config"
	"github.com/evanterry/surveyor/pkg/logging"
)

// Options configure a command run.
type Options struct {
	Version string
	In      io.Reader
	Out     io.Writer
	Err     io.Writer

	// Config skips loading from --config and the environment.
	Config *config.Config
	// Logger overrides the logger built from configuration.
	Logger *zap.Logger
}

// session carries the global flags and the dependencies built for one run.
type session struct {
	opts Options

	configPath string
	format     string

	app *App
	out *OutputFormatter
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	s := &session{opts: opts}
	root := s.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if s.app != nil {
		if err != nil {
			s.app.Logger.Debug("Command failed", zap.Error(err))
		}
		if closeErr := s.app.Close(); closeErr != nil {
			s.app.Logger.Warn("Failed to close local state", zap.Error(closeErr))
		}
		_ = s.app.Logger.Sync()
	}

	if err != nil {
		fmt.Fprintf(opts.Err, "Error: %s\n", apperrors.UserMessage(err))
		return 1
	}
	return 0
}

func (s *session) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "surveyor",
		Short:         "Field client for accessibility surveys",
		Long:          "surveyor browses survey projects, questions and solutions, prices remediations and submits barriers.",
		Version:       s.opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd.Context())
		},
	}
	root.SetIn(s.opts.In)
	root.SetOut(s.opts.Out)
	root.SetErr(s.opts.Err)

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Config file (default config.yaml)")
	root.PersistentFlags().StringVarP(&s.format, "format", "f", FormatTable, "Output format: table|json|yaml")

	root.AddCommand(
		s.loginCommand(),
		s.logoutCommand(),
		s.statusCommand(),
		s.projectsCommand(),
		s.campusesCommand(),
		s.sitesCommand(),
		s.teamCommand(),
		s.standardsCommand(),
		s.formsCommand(),
		s.useCodesCommand(),
		s.setupCommand(),
		s.surveyCommand(),
		s.questionsCommand(),
		s.questionCommand(),
		s.solutionsCommand(),
		s.quoteCommand(),
		s.overrideCommand(),
		s.barrierCommand(),
		s.barriersCommand(),
	)
	return root
}

// setup loads configuration and wires dependencies once per run.
func (s *session) setup(ctx context.Context) error {
	out, err := NewOutputFormatter(s.format, s.opts.Out)
	if err != nil {
		return err
	}
	s.out = out

	cfg := s.opts.Config
	if cfg == nil {
		if cfg, err = config.Load(s.configPath, s.opts.Version); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	logger := s.opts.Logger
	if logger == nil {
		if logger, err = logging.NewLogger(cfg.Env, cfg.LogLevel); err != nil {
			return err
		}
	}
	logger.Debug("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("state_dir", cfg.StateDir))

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	s.app = app
	return nil
}
