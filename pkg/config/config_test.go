package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.FastModel)
	assert.Equal(t, "the university", cfg.InstitutionName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("AI_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("INSTITUTION_NAME", "Example State University")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.AI.Model)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "Example State University", cfg.InstitutionName)
}

func TestLoad_InvalidProviderRejected(t *testing.T) {
	t.Setenv("AI_PROVIDER", "watson")

	_, err := Load("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported ai provider")
}

func TestLoad_MissingAPIKeyIsNotFatal(t *testing.T) {
	cfg, err := Load("dev")
	require.NoError(t, err, "a missing key must not block startup; model routes surface it at call time")
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadSeedTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	content := `categories:
  - name: Teaching & Learning
    description: Course content and instruction quality
    subcategories:
      - Course Content
      - Assessment & Grading
  - name: Facilities
    description: Physical campus spaces
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := &Config{SeedTaxonomyPath: path}
	seed, err := cfg.LoadSeedTaxonomy()
	require.NoError(t, err)

	require.Len(t, seed, 2)
	assert.Equal(t, "Teaching & Learning", seed[0].Name)
	assert.Equal(t, []string{"Course Content", "Assessment & Grading"}, seed[0].Subcategories)
	assert.Empty(t, seed[1].Subcategories)
}

func TestLoadSeedTaxonomy_MissingFile(t *testing.T) {
	cfg := &Config{SeedTaxonomyPath: filepath.Join(t.TempDir(), "absent.yaml")}
	seed, err := cfg.LoadSeedTaxonomy()
	require.NoError(t, err)
	assert.Empty(t, seed)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.internal", Port: 5433, User: "insight",
		Password: "secret", Database: "insight_engine", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=insight password=secret dbname=insight_engine sslmode=require",
		c.ConnectionString())
}
