package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/studytracker/internal/service"
	"github.com/noah-isme/studytracker/pkg/config"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
	"github.com/noah-isme/studytracker/pkg/logger"
)

// Version is reported by the version command.
const Version = "1.0.0"

// runner carries global flags and the streams commands print to.
type runner struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	metrics  *service.MetricsService
	textfile string
	ran      bool
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := &runner{stdout: stdout, stderr: stderr, metrics: service.NewMetricsService()}
	root := r.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil && !r.ran {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	r.report(err)
	if werr := r.metrics.WriteTextfile(r.textfile); werr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", werr)
	}
	return appErrors.ExitCode(err)
}

func (r *runner) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studytracker",
		Short: "Study Tracker - manage your courses, assignments and study sessions",
		Example: `  studytracker init
  studytracker add-course --name "Python Programming" --teacher "Dr. Smith" --credits 3
  studytracker add-assignment --course-id 1 --title "Homework 1" --due-date 2025-02-15
  studytracker update-grade --assignment-id 1 --grade 95.5
  studytracker export --type full --format excel --output report.xlsx`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&r.configPath, "config", "c", "", "Settings file (default "+config.DefaultPath+")")
	cmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(r.stdout, "studytracker version %s\n", Version)
		},
	})

	cmd.AddCommand(r.initCommand())
	cmd.AddCommand(r.courseCommands()...)
	cmd.AddCommand(r.assignmentCommands()...)
	cmd.AddCommand(r.sessionCommands()...)
	cmd.AddCommand(r.reportCommands()...)
	cmd.AddCommand(r.exportCommands()...)
	cmd.AddCommand(r.plotCommands()...)
	cmd.AddCommand(r.serveCommand())
	return cmd
}

// action adapts a command body into a cobra RunE that builds the app around it
// and counts the outcome.
func (r *runner) action(name string, fn func(ctx context.Context, cmd *cobra.Command, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r.ran = true
		err := r.withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return fn(ctx, cmd, a)
		})
		r.metrics.RecordCommand(name, outcome(err))
		return err
	}
}

func (r *runner) withApp(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load configuration")
	}
	if r.logLevel != "" {
		cfg.Log.Level = r.logLevel
	}
	r.textfile = cfg.Metrics.Textfile

	log, err := logger.New(cfg)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build logger")
	}
	defer func() { _ = log.Sync() }()

	a, err := newApp(cfg, log, r.metrics)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

// report prints the diagnostic for a failed command. It is the only place that does.
func (r *runner) report(err error) {
	if err == nil {
		return
	}
	var appErr *appErrors.Error
	switch {
	case appErrors.IsNoData(err):
		fmt.Fprintln(r.stderr, appErrors.FromError(err).Message)
	case appErrors.IsValidation(err) && errors.As(err, &appErr):
		fmt.Fprintf(r.stderr, "Validation error: %s\n", appErr.Message)
	case appErrors.IsMissingCapability(err):
		fmt.Fprintf(r.stderr, "Error: %s\n", appErrors.FromError(err).Message)
	default:
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return service.OutcomeSuccess
	case appErrors.IsNoData(err), appErrors.IsMissingCapability(err):
		return service.OutcomeSkipped
	case appErrors.IsValidation(err):
		return service.OutcomeInvalid
	default:
		return service.OutcomeFailure
	}
}
