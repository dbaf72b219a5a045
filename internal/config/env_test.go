package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Name    string `env:"SCHOOLHUB_TEST_NAME"`
	Port    int    `env:"SCHOOLHUB_TEST_PORT"`
	Debug   bool   `env:"SCHOOLHUB_TEST_DEBUG"`
	Nested  envTestNested
	Ignored string
}

type envTestNested struct {
	Timeout time.Duration `env:"SCHOOLHUB_TEST_TIMEOUT"`
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SCHOOLHUB_TEST_NAME", "schoolhub")
	t.Setenv("SCHOOLHUB_TEST_PORT", "9090")
	t.Setenv("SCHOOLHUB_TEST_DEBUG", "true")
	t.Setenv("SCHOOLHUB_TEST_TIMEOUT", "45s")

	cfg := envTestConfig{Name: "default", Port: 8080, Ignored: "untouched"}
	require.NoError(t, applyEnvOverrides(&cfg))

	assert.Equal(t, "schoolhub", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 45*time.Second, cfg.Nested.Timeout)
	assert.Equal(t, "untouched", cfg.Ignored)
}

func TestApplyEnvOverridesLeavesUnsetFields(t *testing.T) {
	cfg := envTestConfig{Name: "default", Port: 8080}
	require.NoError(t, applyEnvOverrides(&cfg))

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
}

func TestApplyEnvOverridesRejectsBadValues(t *testing.T) {
	t.Setenv("SCHOOLHUB_TEST_PORT", "not-a-number")

	cfg := envTestConfig{}
	err := applyEnvOverrides(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHOOLHUB_TEST_PORT")
}
