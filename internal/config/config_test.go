package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Empty(t, cfg.MetricsAddr)
	assert.False(t, cfg.Parallel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Flags(t *testing.T) {
	cfg, rest, err := load([]string{
		"-log-level", "DEBUG", "-log-format", "json", "-seed", "42",
		"-scientific", "-parallel", "-epochs", "10", "-lr", "0.5", "-metrics-addr", ":9090",
		"fit", "extra",
	}, env(nil), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Scientific)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, 10, cfg.Epochs)
	assert.InDelta(t, 0.5, cfg.LR, 1e-12)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, []string{"fit", "extra"}, rest)
}

func TestLoad_EnvAndPrecedence(t *testing.T) {
	e := env(map[string]string{
		EnvLogLevel:  "WARN",
		EnvLogFormat: "json",
		EnvSeed:      "7",
	})

	cfg, _, err := load(nil, e, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, uint64(7), cfg.Seed)

	cfg, _, err = load([]string{"-seed", "9"}, e, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Seed)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad seed env", nil, map[string]string{EnvSeed: "x"}},
		{"unknown flag", []string{"-nope"}, nil},
		{"bad format", []string{"-log-format", "xml"}, nil},
		{"zero epochs", []string{"-epochs", "0"}, nil},
		{"negative lr", []string{"-lr", "-1"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := load(tt.args, env(tt.env), io.Discard)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
