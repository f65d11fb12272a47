package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	DatabasePath    string

	// Corpus sources. CorpusFile is imported into the store at start;
	// CorpusURL, when set, is a remote question bank used for generation.
	CorpusFile          string
	CorpusURL           string
	CorpusMaxRequests   int
	CorpusWindow        time.Duration
	CorpusRetryAttempts int
	SeedSynthetic       bool

	// Default for exams whose marking scheme does not decide partial credit.
	PartialCredit bool
	SweepInterval time.Duration

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string // OTLP/HTTP collector, e.g. "localhost:4318"
	ServiceName    string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg, err := parse(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func parse(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}
	cfg := &Config{
		ServerAddress:       e.getString("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout:     e.getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DatabasePath:        e.getString("DATABASE_PATH", "pyqforge.db"),
		CorpusFile:          e.getString("CORPUS_FILE", ""),
		CorpusURL:           e.getString("CORPUS_URL", ""),
		CorpusMaxRequests:   e.getInt("CORPUS_MAX_REQUESTS", 60),
		CorpusWindow:        e.getDuration("CORPUS_WINDOW", time.Minute),
		CorpusRetryAttempts: e.getInt("CORPUS_RETRY_ATTEMPTS", 3),
		SeedSynthetic:       e.getBool("SEED_SYNTHETIC", false),
		PartialCredit:       e.getBool("PARTIAL_CREDIT", false),
		SweepInterval:       e.getDuration("SWEEP_INTERVAL", 30*time.Second),
		TracingEnabled:      e.getBool("TRACING_ENABLED", false),
		OTLPEndpoint:        e.getString("OTLP_ENDPOINT", "localhost:4318"),
		ServiceName:         e.getString("SERVICE_NAME", "pyqforge"),
	}
	if e.err != nil {
		return nil, e.err
	}
	if cfg.CorpusRetryAttempts < 1 {
		return nil, fmt.Errorf("CORPUS_RETRY_ATTEMPTS must be at least 1, got %d", cfg.CorpusRetryAttempts)
	}
	if cfg.CorpusWindow <= 0 {
		return nil, fmt.Errorf("CORPUS_WINDOW must be positive, got %s", cfg.CorpusWindow)
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	return cfg, nil
}

// env reads typed variables and keeps the first parse error.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) getString(k, fallback string) string {
	if v := e.getenv(k); v != "" {
		return v
	}
	return fallback
}

func (e *env) getDuration(k string, fallback time.Duration) time.Duration {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Errorf("%s=%q is not a valid duration: %w", k, v, err))
		return fallback
	}
	return d
}

func (e *env) getInt(k string, fallback int) int {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("%s=%q is not a valid integer: %w", k, v, err))
		return fallback
	}
	return n
}

func (e *env) getBool(k string, fallback bool) bool {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(fmt.Errorf("%s=%q is not a valid boolean: %w", k, v, err))
		return fallback
	}
	return b
}

func (e *env) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
