package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/alexanderramin/promptguard/internal/audit"
	"github.com/alexanderramin/promptguard/internal/cli"
	"github.com/alexanderramin/promptguard/internal/config"
	"github.com/alexanderramin/promptguard/internal/db"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/alexanderramin/promptguard/internal/llm"
	"github.com/alexanderramin/promptguard/internal/logging"
	"github.com/mattn/go-isatty"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		Version:         version,
		PromptOperation: cli.PromptOperation,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.IsTerminalOutput = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// Configuration is resolved once, after flags are parsed.
	app.Configure = func(configPath string) error {
		if configPath == "" {
			configPath = config.PathFromEnv()
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		// stdout carries the MCP stream and reports; logs go to stderr.
		logger, err := logging.New(os.Stderr, cfg.LogLevel)
		if err != nil {
			return err
		}

		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client := llm.NewOllamaClient(cfg.LLM, observer)
		svc := guard.NewService(llm.WithRetry(client, cfg.LLM.RetryPolicy()))

		defaults := guard.Config{Model: cfg.LLM.Model, Endpoint: cfg.LLM.Endpoint}
		opts := []assess.Option{assess.WithLogger(logger)}

		if cfg.Audit.Path != "" {
			database, err = db.OpenDB(cfg.Audit.Path)
			if err != nil {
				return fmt.Errorf("opening audit database: %w", err)
			}
			ledger := audit.NewSQLiteLedger(database)
			opts = append(opts, assess.WithRecorder(ledger))
			app.Ledger = ledger
		}

		app.NewAssessor = func(source string) cli.Assessor {
			withSource := append([]assess.Option{assess.WithSource(source)}, opts...)
			return assess.NewAssessor(svc, defaults, withSource...)
		}
		app.Pinger = client
		app.Defaults = defaults
		app.Logger = logger

		logger.Debug().
			Str("model", cfg.LLM.Model).
			Str("endpoint", cfg.LLM.Endpoint).
			Bool("audit", cfg.Audit.Path != "").
			Msg("configured")
		return nil
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
