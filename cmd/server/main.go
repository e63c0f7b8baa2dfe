package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/doanvu/school-eval-api/internal/api"
	"github.com/doanvu/school-eval-api/internal/auth"
	"github.com/doanvu/school-eval-api/internal/config"
	"github.com/doanvu/school-eval-api/internal/db"
	"github.com/doanvu/school-eval-api/internal/evaluation"
	"github.com/doanvu/school-eval-api/internal/jobs"
	"github.com/doanvu/school-eval-api/internal/logging"
	"github.com/doanvu/school-eval-api/internal/metrics"
	"github.com/doanvu/school-eval-api/internal/notify"
	"github.com/doanvu/school-eval-api/internal/observability"
	"github.com/doanvu/school-eval-api/internal/quickaction"
)

var release = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		log.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Sugar.Fatalw("db connect failed", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		log.Sugar.Fatalw("migrations failed", "err", err)
	}
	if cfg.SeedDemo {
		if err := db.SeedDemo(ctx, database); err != nil {
			log.Sugar.Fatalw("seed failed", "err", err)
		}
	}

	evalRepo := &db.EvaluationRepo{DB: database}
	classRepo := &db.ClassRepo{DB: database}

	var sink notify.Sink = &notify.ZapSink{Log: log.Sugar}
	if cfg.BotToken != "" && cfg.NotifyChatID != "" {
		tgSink, err := notify.NewTelegramSink(cfg.BotToken, cfg.NotifyChatID)
		if err != nil {
			log.Sugar.Warnw("telegram sink disabled", "err", err)
		} else {
			sink = notify.Multi{sink, tgSink}
		}
	}

	svc := evaluation.NewService(evalRepo, classRepo, sink, log.Sugar)
	registry := quickaction.NewRegistry()
	verifier := auth.NewVerifier(cfg.JWTSecret)

	runner := jobs.New(ctx)
	runner.Every(time.Minute, "ledger_size", func(ctx context.Context) error {
		n, err := evalRepo.Count(ctx)
		if err != nil {
			return err
		}
		metrics.LedgerSize.Set(float64(n))
		return nil
	})

	srv := api.New(svc, registry, verifier, database, log.Sugar)
	log.Sugar.Infow("listening", "addr", cfg.HTTPAddr)
	if err := srv.Start(ctx, cfg.HTTPAddr); err != nil {
		log.Base.Fatal("server stopped", zap.Error(err))
	}
}
