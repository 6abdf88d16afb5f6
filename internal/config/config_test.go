package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5432
user = "scheduler"
password = "secret"
dbname = "scheduler_service"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true

[notifier]
url = "http://notifications:8090"
timeout = 3

[scheduler]
slot_granularity_minutes = 30
retention_days = 30
sweep_schedule = "30 2 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 3, cfg.Notifier.Timeout)
	assert.Equal(t, 30, cfg.Scheduler.SlotGranularityMinutes)
	assert.Equal(t, "30 2 * * *", cfg.Scheduler.SweepSchedule)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "scheduler"
dbname = "scheduler_service"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "scheduler-service", cfg.Metrics.ServiceName)
	assert.Equal(t, 15, cfg.Scheduler.SlotGranularityMinutes)
	assert.Equal(t, 90, cfg.Scheduler.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Scheduler.SweepSchedule)
}

func TestLoad_DSN(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "scheduler"
password = "secret"
dbname = "scheduler_service"
sslmode = "require"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=scheduler password=secret dbname=scheduler_service sslmode=require",
		cfg.Database.DSN())
}

func TestLoad_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_GranularityOutOfRange(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "scheduler"
dbname = "scheduler_service"

[scheduler]
slot_granularity_minutes = 3
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
