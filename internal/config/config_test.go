package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "New York", cfg.DefaultOrigin)
	assert.Equal(t, "local", cfg.PDFRenderer)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PLANNER_API_BASE_URL", "https://planner.example.com/")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("PDF_RENDERER", "remote")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ENVIRONMENT", "production")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://planner.example.com", cfg.BaseURL())
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "remote", cfg.PDFRenderer)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"PLANNER_API_BASE_URL", "planner.local"},
		{"REQUEST_TIMEOUT", "0s"},
		{"REQUEST_TIMEOUT", "soon"},
		{"PDF_RENDERER", "word"},
		{"LOOKUP_CACHE_TTL", "-1m"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, _, err := Load()
			assert.Error(t, err)
		})
	}
}
