package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "pyqforge.db", cfg.DatabasePath)
	assert.Equal(t, 60, cfg.CorpusMaxRequests)
	assert.Equal(t, time.Minute, cfg.CorpusWindow)
	assert.Equal(t, 3, cfg.CorpusRetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.False(t, cfg.PartialCredit)
	assert.False(t, cfg.TracingEnabled)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(lookup(map[string]string{
		"SERVER_ADDRESS":  ":9090",
		"CORPUS_URL":      "http://bank.local",
		"PARTIAL_CREDIT":  "true",
		"SWEEP_INTERVAL":  "5s",
		"TRACING_ENABLED": "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "http://bank.local", cfg.CorpusURL)
	assert.True(t, cfg.PartialCredit)
	assert.Equal(t, 5*time.Second, cfg.SweepInterval)
	assert.True(t, cfg.TracingEnabled)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, "SHUTDOWN_TIMEOUT"},
		{"bool", map[string]string{"SEED_SYNTHETIC": "maybe"}, "SEED_SYNTHETIC"},
		{"int", map[string]string{"CORPUS_MAX_REQUESTS": "lots"}, "CORPUS_MAX_REQUESTS"},
		{"retries", map[string]string{"CORPUS_RETRY_ATTEMPTS": "0"}, "CORPUS_RETRY_ATTEMPTS"},
		{"window", map[string]string{"CORPUS_WINDOW": "0s"}, "CORPUS_WINDOW"},
		{"sweep", map[string]string{"SWEEP_INTERVAL": "-1s"}, "SWEEP_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(lookup(tt.vars))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
