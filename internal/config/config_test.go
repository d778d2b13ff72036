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

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "studio"
dbname = "studio_service"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "studio-service", cfg.Metrics.ServiceName)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
read_timeout = 5

[database]
host = "db.internal"
user = "studio"
password = "secret"
dbname = "studio_service"

[metrics]
enabled = true
service_name = "studio-service-test"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "studio-service-test", cfg.Metrics.ServiceName)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing dbname",
			content: `
[database]
user = "studio"
`,
		},
		{
			name: "missing user",
			content: `
[database]
dbname = "studio_service"
`,
		},
		{
			name: "invalid port",
			content: `
[server]
http_port = 70000

[database]
user = "studio"
dbname = "studio_service"
`,
		},
		{
			name: "metrics enabled without path",
			content: `
[database]
user = "studio"
dbname = "studio_service"

[metrics]
enabled = true
path = ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			assert.Error(t, err)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))

	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "studio",
		Password: "secret",
		DBName:   "studio_service",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=studio password=secret dbname=studio_service sslmode=disable",
		d.DSN())
}
