package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pyqforge/backend/internal/api"
	"github.com/pyqforge/backend/internal/corpus"
	"github.com/pyqforge/backend/internal/infrastructure/config"
	"github.com/pyqforge/backend/internal/service"
	"github.com/pyqforge/backend/internal/simulation"
	"github.com/pyqforge/backend/internal/store"
	"github.com/pyqforge/backend/internal/telemetry"

	_ "github.com/pyqforge/backend/docs" // generated swagger docs
)

// @title           PYQ Forge API
// @version         1.0
// @description     Trend-weighted mock tests from previous-year questions, with attempt scoring and diagnostics.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	tcfg := telemetry.DefaultConfig()
	tcfg.Enabled = cfg.TracingEnabled
	tcfg.Endpoint = cfg.OTLPEndpoint
	tcfg.ServiceName = cfg.ServiceName
	if err := telemetry.Init(tcfg); err != nil {
		logger.Error("failed to initialise tracing", "error", err)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := loadCorpus(context.Background(), db, cfg, logger); err != nil {
		logger.Error("failed to load question corpus", "error", err)
		os.Exit(1)
	}

	// The store doubles as the corpus unless a remote bank is configured.
	var provider corpus.Provider
	if cfg.CorpusURL != "" {
		provider = corpus.NewRemoteProvider(cfg.CorpusURL,
			corpus.NewRequestCounter(cfg.CorpusMaxRequests, cfg.CorpusWindow),
			corpus.WithMaxTries(uint(cfg.CorpusRetryAttempts)),
		)
		logger.Info("using remote corpus", "url", cfg.CorpusURL)
	}

	exams := service.NewExamService(db, provider, logger,
		service.WithPartialCredit(cfg.PartialCredit),
		service.WithTracer(telemetry.Tracer()),
	)
	defer exams.Close()

	handler := api.NewHandler(exams, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: RequestID → Logging → CORS → mux ─────────
	chain := api.RequestID(api.Logging(logger)(api.CORS(mux)))

	// ── Auto-submit sweep ───────────────────────────────────────────
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runSweeper(sweepCtx, exams, cfg.SweepInterval, logger)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		stopSweep()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
		if err := telemetry.Shutdown(ctx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
	<-done
}

// loadCorpus imports CORPUS_FILE and, when asked, seeds a synthetic bank
// into an empty database.
func loadCorpus(ctx context.Context, db *store.SQLiteStore, cfg *config.Config, logger *slog.Logger) error {
	if cfg.CorpusFile != "" {
		qs, err := corpus.LoadFile(cfg.CorpusFile)
		if err != nil {
			return err
		}
		if err := db.SaveQuestions(ctx, qs); err != nil {
			return err
		}
		logger.Info("corpus imported", "file", cfg.CorpusFile, "questions", len(qs))
	}

	if !cfg.SeedSynthetic {
		return nil
	}
	n, err := db.CountQuestions(ctx, "")
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	qs := simulation.Default()
	if err := db.SaveQuestions(ctx, qs); err != nil {
		return err
	}
	logger.Info("synthetic corpus seeded", "questions", len(qs))
	return nil
}

// runSweeper finalizes attempts whose timers were lost, once at start and
// then every interval.
func runSweeper(ctx context.Context, exams *service.ExamService, interval time.Duration, logger *slog.Logger) {
	if _, err := exams.SweepExpired(ctx); err != nil {
		logger.Error("sweep failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := exams.SweepExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Error("sweep failed", "error", err)
			}
		}
	}
}
