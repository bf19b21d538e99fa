package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/config"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/db"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/gcal"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/logging"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/metrics"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/repository"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath picks --config out of args ahead of cobra, since the
// config decides how everything else is wired.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run(args []string) error {
	cfg, err := config.Load(configPath(args))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	registry := prometheus.NewRegistry()
	promObserver, err := metrics.NewPromObserver(registry)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	observer := service.MultiUseCaseObserver(service.NewLogUseCaseObserver(logger), promObserver)

	publisher := gcal.NewDeferredPublisher(cfg.GCal.CredentialsDir, cfg.GCal.Calendar, logger)

	app := &cli.App{
		Backlog: service.NewBacklogService(taskRepo, uow, observer),
		Planner: service.NewPlannerService(taskRepo, uow,
			service.WithPublisher(publisher),
			service.WithObservers(observer),
		),
		Config:   *cfg,
		Logger:   logger,
		Gatherer: registry,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
