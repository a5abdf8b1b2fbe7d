package config

import (
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://localhost/social")
	t.Setenv("POST_STORE", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("REALTIME_BACKEND", "redis")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "1.5")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, PostStoreMongo, cfg.PostStore)
	require.Equal(t, "socialmedia", cfg.MongoDatabase)
	require.Equal(t, RealtimeRedis, cfg.RealtimeBackend)
	require.Equal(t, log.DEBUG, cfg.Level())
	require.Equal(t, 1.0, cfg.OTelSampleRatio)
	require.Empty(t, cfg.OTelEndpoint)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:             "development",
			PostgresURL:     "postgres://localhost/social",
			PostStore:       PostStorePostgres,
			RealtimeBackend: RealtimeNone,
			JWTSecret:       defaultJWTSecret,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing postgres", mutate: func(c *Config) { c.PostgresURL = "" }, wantErr: "POSTGRES_CONN_STR"},
		{name: "mongo without uri", mutate: func(c *Config) { c.PostStore = PostStoreMongo }, wantErr: "MONGO_URI"},
		{name: "unknown store", mutate: func(c *Config) { c.PostStore = "sqlite" }, wantErr: "POST_STORE"},
		{name: "unknown realtime", mutate: func(c *Config) { c.RealtimeBackend = "nats" }, wantErr: "REALTIME_BACKEND"},
		{name: "default secret in production", mutate: func(c *Config) { c.Env = "production" }, wantErr: "JWT_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
