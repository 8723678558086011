package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "paginated-user-service/pkg/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
	assert.Equal(t, "users_db", cfg.Mongo.Database)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.BurstCapacity)
	assert.Equal(t, "paginated-user-service", cfg.Logger.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://db.internal:27017/people")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017/people", cfg.Mongo.URL)
	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := "MONGO_URL=mongodb://file-host:27017\nPORT=4000\nRATE_LIMIT_ENABLED=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://file-host:27017", cfg.Mongo.URL)
	assert.Equal(t, "4000", cfg.App.Port)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "non-numeric port", mutate: func(c *Config) { c.App.Port = "http" }, field: "Port"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "cassandra" }, field: "Driver"},
		{name: "missing mongo url", mutate: func(c *Config) { c.Mongo.URL = "" }, field: "URL"},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.App.ShutdownTimeoutSeconds = 0 }, field: "ShutdownTimeoutSeconds"},
		{name: "bad log format", mutate: func(c *Config) { c.Logger.Format = "xml" }, field: "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(t.TempDir())
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidate_MongoURLOptionalForSQL(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Store.Driver = DriverSQLite
	cfg.Mongo.Driver = DriverSQLite
	cfg.Mongo.URL = ""

	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable", db.DSN())
}
