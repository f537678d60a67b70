package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"spendlog/internal/app"
	"spendlog/internal/backend"
	"spendlog/internal/config"
	"spendlog/internal/core"
	"spendlog/internal/log"
	"spendlog/internal/services"
)

const dateLayout = "2006-01-02"

type options struct {
	now   func() time.Time
	newID services.IDFunc
}

type Option func(*options)

// WithClock sets the time source used for the startup pass and new records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDFunc sets the id generator for every record created in a run.
func WithIDFunc(f services.IDFunc) Option {
	return func(o *options) {
		o.newID = f
	}
}

// session is the state of one invocation. It is populated by the root
// command's pre-run hook, before any subcommand runs.
type session struct {
	opts options

	cfg       *config.Config
	logger    *log.Logger
	state     *app.State
	backend   *backend.BackendResult
	generated int
}

// Execute runs the command line given by args. Command output goes to stdout,
// logs and errors to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) error {
	s := &session{
		opts: options{
			now:   time.Now,
			newID: services.NewID,
		},
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	defer s.close(ctx)

	root := s.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (s *session) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "spendlog",
		Short: "Track expenses, budgets and recurring costs",
		Long: "spendlog records expenses, budgets and recurring costs in a local store.\n" +
			"Every run first logs the recurring expenses that have fallen due.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.start,
	}

	root.AddCommand(
		s.processCommand(),
		s.expenseCommand(),
		s.budgetCommand(),
		s.recurringCommand(),
		s.statusCommand(),
	)
	return root
}

// start loads the configuration, opens the store and runs the recurring
// processor once.
func (s *session) start(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = SetupLogger(cfg, cmd.ErrOrStderr())

	state, res, err := OpenState(ctx, cfg, s.logger.Logger, services.WithIDFunc(s.opts.newID))
	if err != nil {
		return err
	}
	s.state, s.backend = state, res

	generated, err := state.Init(ctx, s.opts.now())
	if err != nil {
		return err
	}
	s.generated = generated

	if generated > 0 {
		s.logger.InfoContext(ctx, "Logged due recurring expenses",
			log.FieldGenerated, generated,
			log.FieldBackend, cfg.DataBackend)
	}
	return nil
}

func (s *session) close(ctx context.Context) {
	if err := s.backend.Close(); err != nil {
		slog.WarnContext(ctx, "Failed to close backend", log.FieldError, err)
	}
}

func (s *session) processCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Log recurring expenses that are due and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d expense(s) from recurring templates\n", s.generated)
			return nil
		},
	}
}

func (s *session) formatMoney(m core.Money) string {
	return m.Format(s.cfg.Currency)
}
