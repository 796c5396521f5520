package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gemini", cfg.Provider())
	assert.Equal(t, "memory", cfg.Storage())
	assert.Equal(t, 3, cfg.PlannerMaxIterations)
	assert.Equal(t, 3, cfg.PlannerSafetyLoopPadding)
	assert.Equal(t, 5000.0, cfg.PlannerBudgetTolerance)
	assert.Equal(t, 168*time.Hour, cfg.RedisImageTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("PLANNER_MAX_ITERATIONS", "5")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider())
	assert.Equal(t, "sk-test", cfg.LLMAPIKey())
	assert.Equal(t, 5, cfg.PlannerMaxIterations)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider":     {"LLM_PROVIDER": "llama"},
		"postgres without url": {"STORAGE_DRIVER": "postgres"},
		"unknown storage":      {"STORAGE_DRIVER": "sqlite"},
		"negative iterations":  {"PLANNER_MAX_ITERATIONS": "-1"},
		"negative tolerance":   {"PLANNER_BUDGET_TOLERANCE": "-10"},
		"malformed integer":    {"PLANNER_MAX_ITERATIONS": "three"},
		"malformed redis ttl":  {"REDIS_IMAGE_TTL": "forever"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
