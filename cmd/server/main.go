package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizforge/qbank-backend/internal/audit"
	"github.com/quizforge/qbank-backend/internal/config"
	"github.com/quizforge/qbank-backend/internal/database"
	"github.com/quizforge/qbank-backend/internal/guard"
	"github.com/quizforge/qbank-backend/internal/handler"
	"github.com/quizforge/qbank-backend/internal/logger"
	"github.com/quizforge/qbank-backend/internal/repository"
	"github.com/quizforge/qbank-backend/internal/router"
	"github.com/quizforge/qbank-backend/internal/service"
	"github.com/quizforge/qbank-backend/internal/strategy"
	"github.com/quizforge/qbank-backend/internal/validator"
	"github.com/quizforge/qbank-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QBank Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	authorRepo := repository.NewAuthorRepository(pool)
	bankRepo := repository.NewBankRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	relationshipRepo := repository.NewRelationshipRepository(pool)
	taxonomyRepo := repository.NewTaxonomyRepository(pool)
	uow := repository.NewUnitOfWork(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo, rdb, cfg, log)
	questionService := service.NewQuestionService(questionRepo, relationshipRepo)

	// ─── Audit Sink + Validation Pipeline ─────────────────────────────
	sinkCtx, sinkCancel := context.WithCancel(context.Background())
	auditSink := audit.NewSink(sinkCtx, rdb, log)

	pipeline := guard.NewPipeline(log,
		guard.NewRateLimitGuard(cfg.RateBurstWindow, cfg.RateBurstLimit, cfg.RateSustainedWindow, cfg.RateSustainedLimit, nil),
		guard.NewSessionIntegrityGuard(authService, auditSink, nil, log),
		guard.NewOwnershipGuard(bankRepo),
		guard.NewTaxonomyReferenceGuard(taxonomyService),
		guard.NewDataIntegrityGuard(cfg.MCQDraftZeroCorrect),
	)

	upsertService := service.NewUpsertService(
		pipeline,
		strategy.NewResolver(),
		uow,
		questionRepo,
		relationshipRepo,
		log,
	)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, authorRepo),
		Question: handler.NewQuestionHandler(upsertService, questionService),
		Monitor:  handler.NewMonitorHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	auditWorker := worker.NewAuditWorker(pool, rdb, log)
	go auditWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Flush the audit sink, then stop the persistence worker.
	sinkCancel()
	auditSink.Wait()
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
