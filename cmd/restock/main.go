package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Spok95/restock/internal/config"
	"github.com/Spok95/restock/internal/dialog"
	"github.com/Spok95/restock/internal/domain/backlog"
	"github.com/Spok95/restock/internal/domain/cards"
	"github.com/Spok95/restock/internal/infra/auth"
	"github.com/Spok95/restock/internal/infra/db"
	"github.com/Spok95/restock/internal/infra/logger"
	"github.com/Spok95/restock/internal/infra/messaging"
	"github.com/Spok95/restock/internal/infra/metrics"
	"github.com/Spok95/restock/internal/infra/notify"
	"github.com/Spok95/restock/internal/infra/wms"
	"github.com/Spok95/restock/internal/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("restock", pflag.ContinueOnError)
	cfgPath := flags.String("config", "", "path to a YAML config file")
	flags.String("mode", "", "create or report (asks when empty)")
	noWait := flags.Bool("no-wait", false, "exit without waiting for ENTER")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	code := execute(*cfgPath, flags)
	if !*noWait {
		_ = dialog.WaitForEnter(os.Stdin, os.Stdout, "Press ENTER to exit.")
	}
	return code
}

func execute(cfgPath string, flags *pflag.FlagSet) int {
	cfg, log, closer, err := loadConfig(cfgPath, flags)
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mode, err := chooseMode(cfg.App.Mode)
	if err != nil {
		log.Error("mode selection failed", "err", err)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	met := metrics.New(string(mode))
	deps := runner.Deps{
		Auth:    auth.New(cfg.Auth.TokenURL, cfg.Auth.ClientID, cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.Timeout),
		Cards:   cards.NewSubmitter(wms.New(cfg.WMS.URL, cfg.WMS.RequesterID, cfg.WMS.Category, cfg.WMS.SubCategory, cfg.WMS.Timeout), cfg.Files.TempDir, log),
		Mail:    messaging.New(cfg.Messaging.URL, cfg.Messaging.Timeout),
		Metrics: met,
		Log:     log,
		Out:     os.Stdout,
	}

	if cfg.Postgres.DSN != "" {
		closeDB := openArchive(ctx, cfg.Postgres.DSN, log, &deps)
		defer closeDB()
	}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, "")
		if err != nil {
			log.Warn("telegram disabled", "err", err)
		} else {
			deps.Notifier = tg
		}
	}

	r, err := runner.New(cfg, deps)
	if err != nil {
		log.Error("runner setup failed", "err", err)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	code := 0
	if err := r.Run(ctx, mode); err != nil {
		log.Error("run failed", "mode", mode, "err", err)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		code = 1
	}

	if cfg.Metrics.Textfile != "" {
		if err := met.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn("metrics textfile not written", "path", cfg.Metrics.Textfile, "err", err)
		}
	}
	return code
}

// loadConfig loads and validates the config and opens the run log. The log is
// opened even for a rejected config so the failure is recorded in it.
func loadConfig(cfgPath string, flags *pflag.FlagSet) (config.Config, *slog.Logger, io.Closer, error) {
	cfg, cfgErr := config.Load(cfgPath, flags)
	if cfgErr != nil {
		cfgErr = fmt.Errorf("load config: %w", cfgErr)
	} else {
		cfgErr = cfg.Validate()
	}

	logFile := cfg.App.LogFile
	if logFile == "" {
		logFile = config.DefaultLogFile
	}
	log, closer, err := logger.New(cfg.App.Env, logFile)
	if err != nil {
		return cfg, nil, nil, errors.Join(cfgErr, err)
	}
	if cfgErr != nil {
		log.Error("configuration rejected", "config", cfgPath, "err", cfgErr)
		return cfg, log, closer, cfgErr
	}
	return cfg, log, closer, nil
}

func chooseMode(configured string) (dialog.Mode, error) {
	if configured != "" {
		return dialog.ParseMode(configured)
	}
	return dialog.Ask(os.Stdin, os.Stdout)
}

// openArchive migrates and connects the results archive. Any failure leaves
// the run without an archive.
func openArchive(ctx context.Context, dsn string, log *slog.Logger, deps *runner.Deps) func() {
	if err := db.Migrate(dsn); err != nil {
		log.Error("migrations failed, archive disabled", "err", err)
		return func() {}
	}
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Error("db connect failed, archive disabled", "err", err)
		return func() {}
	}
	log.Info("archive connected")
	deps.Archive = backlog.NewRepo(pool)
	return pool.Close
}
