package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Address)
	assert.Equal(t, "/usr/bin/trans", cfg.Engine.Binary)
	assert.Equal(t, "redis://127.0.0.1/", cfg.Cache.RedisURL)
	assert.Equal(t, "", cfg.Cache.KeyPrefix)
	assert.Equal(t, 30*time.Second, cfg.Server.LookupTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.Cache.Memory)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GOTRANS_ADDRESS", "0.0.0.0:9000")
	t.Setenv("GOTRANS_BIN", "/opt/trans")
	t.Setenv("GOTRANS_KEY_PREFIX", "tr:")
	t.Setenv("GOTRANS_LOOKUP_TIMEOUT", "5s")
	t.Setenv("GOTRANS_MEMORY_CACHE", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, "/opt/trans", cfg.Engine.Binary)
	assert.Equal(t, "tr:", cfg.Cache.KeyPrefix)
	assert.Equal(t, 5*time.Second, cfg.Server.LookupTimeout)
	assert.True(t, cfg.Cache.Memory)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFromEnv_BadDuration(t *testing.T) {
	t.Setenv("GOTRANS_LOOKUP_TIMEOUT", "soon")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty address", func(c *Config) { c.Server.Address = "" }, "address"},
		{"empty binary", func(c *Config) { c.Engine.Binary = "" }, "binary"},
		{"zero lookup timeout", func(c *Config) { c.Server.LookupTimeout = 0 }, "lookup timeout"},
		{"negative engine timeout", func(c *Config) { c.Engine.Timeout = -time.Second }, "engine timeout"},
		{"no redis", func(c *Config) { c.Cache.RedisURL = "" }, "redis URL"},
		{"openai rate", func(c *Config) { c.OpenAI.APIKey = "k"; c.OpenAI.RequestsPerMinute = 0 }, "requests per minute"},
		{"log level", func(c *Config) { c.Log.Level = "chatty" }, "log level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_MemoryCacheWithoutRedis(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	cfg.Cache.RedisURL = ""
	cfg.Cache.Memory = true

	assert.NoError(t, cfg.Validate())
}

func TestLogConfig_NewLogger(t *testing.T) {
	logger, err := LogConfig{Level: "debug", Format: "json"}.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = LogConfig{Level: "nope"}.NewLogger()
	assert.Error(t, err)
}
