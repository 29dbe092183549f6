package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-calculator/internal/cache"
	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/config"
	"github.com/rpgo/savings-calculator/internal/logging"
	"github.com/rpgo/savings-calculator/internal/service"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries state shared by all subcommands.
type app struct {
	flagConfig   string
	flagLogLevel string
	flagVerbose  bool

	settings *config.Settings
	logger   *logging.Logger
	out      io.Writer
	errOut   io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "savings",
		Short: "Savings goal projection calculator",
		Long: "Project how many months of regular deposits with monthly compounding it takes\n" +
			"to reach a savings target, optionally growing the target with inflation.",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Settings file (default ./savings.yaml or ~/.config/savings/savings.yaml)")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&a.flagVerbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newProjectCmd(),
		a.newScenariosCmd(),
		a.newExampleCmd(),
		a.newServeCmd(),
		a.newFormatsCmd(),
	)
	return root
}

// setup loads settings and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(a.flagConfig)
	if err != nil {
		return err
	}
	if a.flagLogLevel != "" {
		settings.Logging.Level = a.flagLogLevel
	}
	if a.flagVerbose {
		settings.Logging.Level = "debug"
	}
	logger, err := logging.New(a.errOut, settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	return nil
}

// newService wires the engine and the configured cache backend. The
// returned cleanup closes any cache connection.
func (a *app) newService(ctx context.Context, maxMonths int) (*service.ProjectionService, func()) {
	if maxMonths <= 0 {
		maxMonths = a.settings.Engine.MaxMonths
	}
	repo, cleanup := a.openCache(ctx)
	svc := service.NewProjectionService(calculation.NewEngineWithMaxMonths(maxMonths), repo, a.settings.Cache.TTL)
	svc.SetLogger(a.logger.With("engine"))
	return svc, cleanup
}

// openCache falls back to the in-memory cache when Redis is unreachable.
func (a *app) openCache(ctx context.Context) (cache.Repository, func()) {
	switch a.settings.Cache.Backend {
	case config.CacheBackendNone:
		return cache.Nop{}, func() {}
	case config.CacheBackendRedis:
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		r, err := cache.NewRedis(dialCtx, a.settings.Cache.RedisAddr)
		if err != nil {
			a.logger.Warnf("%v; using in-memory cache", err)
			return cache.NewMemory(), func() {}
		}
		a.logger.Debugf("using redis cache at %s", a.settings.Cache.RedisAddr)
		return r, func() { _ = r.Close() }
	default:
		return cache.NewMemory(), func() {}
	}
}

// reportFormat returns the flag value or the configured default.
func (a *app) reportFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return a.settings.Output.Format
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.errOut, format, args...)
}
