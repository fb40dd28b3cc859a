package bootstrap

import (
	"bytes"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/t1250-loader/config"
)

const testBusinessUnits = `
business_units:
  - id: 1
    name: Toll Priority
    token: tolp
    conditions: [send_email]
`

func testAppConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	buFile := filepath.Join(dir, "bu.yaml")
	require.NoError(t, os.WriteFile(buFile, []byte(testBusinessUnits), 0o600))

	return &config.AppConfig{
		LogLevel: "info",
		Postgres: config.DBConfig{Host: "localhost", Port: 5432, User: "t1250", Password: "t1250", Name: "t1250", SSLMode: "disable"},
		Loader: config.LoaderConfig{
			CommsDir:          filepath.Join(dir, "comms"),
			BusinessUnitsFile: buFile,
			AgentCacheTTL:     time.Minute,
			FileEncoding:      "latin1",
		},
	}
}

// lazyDB opens a pool without connecting; wiring never touches the database.
func lazyDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", testAppConfig(t).Postgres.DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewServices_Wires(t *testing.T) {
	cfg := testAppConfig(t)

	svc, err := NewServices(&ServiceDeps{Config: cfg, DB: lazyDB(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.NotNil(t, svc.Loader)
	assert.NotNil(t, svc.Agents)
	assert.NotNil(t, svc.Runner)
	_, ok := svc.BusinessUnits.ByToken("TOLP")
	assert.True(t, ok)
	assert.Nil(t, svc.Observability.MetricsSink)
	assert.False(t, svc.Observability.AlertNotifier.Enabled())

	info, err := os.Stat(cfg.Loader.CommsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewServices_Errors(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	_, err = NewServices(&ServiceDeps{Config: testAppConfig(t)})
	require.Error(t, err)

	cfg := testAppConfig(t)
	cfg.Loader.BusinessUnitsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewServices(&ServiceDeps{Config: cfg, DB: lazyDB(t)})
	require.Error(t, err)

	cfg = testAppConfig(t)
	cfg.Loader.FileEncoding = "ebcdic"
	_, err = NewServices(&ServiceDeps{Config: cfg, DB: lazyDB(t)})
	require.Error(t, err)
}

func TestBuildAlertNotifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	disabled := buildAlertNotifier(logger, config.ObservabilityNotificationsConfig{
		Slack: config.SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.test/x"},
	})
	assert.False(t, disabled.Enabled())

	enabled := buildAlertNotifier(logger, config.ObservabilityNotificationsConfig{
		Enabled:   true,
		Timeout:   time.Second,
		Slack:     config.SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.test/x"},
		PagerDuty: config.PagerDutyNotificationConfig{Enabled: true, RoutingKey: "routing"},
	})
	assert.True(t, enabled.Enabled())
}

func TestBuildObservability_MetricsDisabled(t *testing.T) {
	obs := buildObservability(nil, config.ObservabilityConfig{
		Metrics: config.ObservabilityMetricsConfig{Enabled: false, StatsdAddress: "127.0.0.1:8125"},
	})
	assert.Nil(t, obs.MetricsSink)
	assert.NotNil(t, obs.AlertNotifier)
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := initLogger(&buf, "warn", false)
	logger.Info("hidden")
	logger.Warn("shown", "file", "T1250_TOLP_20131021141503.txt")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"file":"T1250_TOLP_20131021141503.txt"`)

	buf.Reset()
	initLogger(&buf, "debug", true).Debug("dev output")
	assert.True(t, strings.Contains(buf.String(), "msg=\"dev output\""))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
