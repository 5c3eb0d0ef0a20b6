package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for insight-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (the model API key, the database password) must only come from
// environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Institution display name interpolated into prompts.
	InstitutionName string `yaml:"institution_name" env:"INSTITUTION_NAME" env-default:"the university"`

	// AI model service configuration
	AI AIConfig `yaml:"ai"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// SeedTaxonomyPath points to the YAML file holding the core category
	// list used when a unit has no taxonomy of its own yet.
	SeedTaxonomyPath string `yaml:"seed_taxonomy_path" env:"SEED_TAXONOMY_PATH" env-default:"taxonomy_defaults.yaml"`
}

// AIConfig holds configuration for the external model service.
// The API key is intentionally absent from YAML; its absence is not a startup
// error — routes that need the model surface it as a misconfiguration at call
// time, so read-only dashboard routes keep working without a key.
type AIConfig struct {
	// Provider selects the backing client: "openai" or "anthropic".
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`

	// BaseURL overrides the provider endpoint (e.g. a gateway or proxy).
	BaseURL string `yaml:"base_url" env:"AI_BASE_URL" env-default:""`

	// Model is the default model identifier for analytical tasks.
	Model string `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o"`

	// FastModel is the lighter model used for conversational Q&A.
	FastModel string `yaml:"fast_model" env:"AI_FAST_MODEL" env-default:"gpt-4o-mini"`

	// APIKey is the model service credential. Secret - env only.
	APIKey string `yaml:"-" env:"AI_API_KEY"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"insight"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"insight_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// SeedCategory is one entry of the core category list shipped with the
// service. Units start from these until administrators curate their own.
type SeedCategory struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Subcategories []string `yaml:"subcategories,omitempty"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config. A missing config.yaml is not an error; defaults and
// environment variables then fully describe the service.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported ai provider %q (want openai or anthropic)", c.AI.Provider)
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai model must not be empty")
	}
	return nil
}

// LoadSeedTaxonomy parses the core category list from the configured YAML
// file. Returns an empty slice when the file does not exist.
func (c *Config) LoadSeedTaxonomy() ([]SeedCategory, error) {
	data, err := os.ReadFile(c.SeedTaxonomyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read seed taxonomy: %w", err)
	}

	var seed struct {
		Categories []SeedCategory `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed taxonomy: %w", err)
	}
	return seed.Categories, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
