package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemur-ml/lemur/internal/config"
	"github.com/lemur-ml/lemur/internal/kernel"
)

func TestRun_Version(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(config.DefaultConfig(), []string{"version"}, &buf))
	assert.Equal(t, "lemur "+version+"\n", buf.String())
}

func TestRun_Usage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(config.DefaultConfig(), nil, &buf))
	assert.Contains(t, buf.String(), "Commands:")
	assert.Contains(t, buf.String(), "-parallel")

	buf.Reset()
	assert.Error(t, run(config.DefaultConfig(), []string{"train"}, &buf))
}

func TestRun_Demo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(config.DefaultConfig(), []string{"demo"}, &buf))
	out := buf.String()
	assert.Contains(t, out, "[[[0.0000, 1.0000, 2.0000, 3.0000]")
	assert.Contains(t, out, "sum#")
	assert.Contains(t, out, "└── leaf#")
}

func TestRun_Fit(t *testing.T) {
	kernel.Seed(1)
	cfg := config.DefaultConfig()
	var buf bytes.Buffer
	require.NoError(t, run(cfg, []string{"fit"}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "weight ["), lines[0])

	var loss float64
	_, err := fmt.Sscanf(lines[2], "loss %g", &loss)
	require.NoError(t, err)
	assert.Less(t, loss, 0.01)
}
