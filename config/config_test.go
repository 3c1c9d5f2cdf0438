package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, applyEnv(&cfg, lookupFrom(nil)))
	require.NoError(t, cfg.Validate())
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Defaults()
	err := applyEnv(&cfg, lookupFrom(map[string]string{
		"PORT":                   ":9090",
		"GALERIA_PROBE":          "http",
		"GALERIA_IMAGE_BASE_URL": "https://cdn.example.com/",
		"GALERIA_PAGE_TTL":       "15",
		"GALERIA_CARD_SOURCE":    "postgres",
	}))
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "http://localhost:9090", cfg.BaseURL)
	require.Equal(t, ProbeHTTP, cfg.ProbeBackend)
	require.Equal(t, 15*time.Minute, cfg.PageTTL)
	require.NoError(t, cfg.Validate())

	cfg = Defaults()
	require.NoError(t, applyEnv(&cfg, lookupFrom(map[string]string{"GALERIA_PAGE_TTL": "90s"})))
	require.Equal(t, 90*time.Second, cfg.PageTTL)

	cfg = Defaults()
	require.Error(t, applyEnv(&cfg, lookupFrom(map[string]string{"GALERIA_PAGE_TTL": "soon"})))
}

func TestValidateRejectsIncompleteBackends(t *testing.T) {
	cfg := Defaults()
	cfg.ProbeBackend = ProbeDrive
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.CardSource = "csv"
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.ProbeBackend = "gopher"
	require.Error(t, cfg.Validate())
}

func TestLoadReadsYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galeria.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Cuadros en venta
card_source: yaml
cards_path: cards.yaml
page_ttl: 10m
`), 0644))

	t.Setenv("GALERIA_CONFIG", path)
	t.Setenv("GALERIA_TITLE", "Desde el entorno")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Desde el entorno", cfg.Title)
	require.Equal(t, SourceYAML, cfg.CardSource)
	require.Equal(t, "cards.yaml", cfg.CardsPath)
	require.Equal(t, 10*time.Minute, cfg.PageTTL)
}
