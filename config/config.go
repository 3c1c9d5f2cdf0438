package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Card sources
const (
	SourceHTML     = "html"
	SourceYAML     = "yaml"
	SourcePostgres = "postgres"
)

// Probe backends
const (
	ProbeHTTP  = "http"
	ProbeFile  = "file"
	ProbeDrive = "drive"
)

// Config holds the server configuration.
// Values come from an optional YAML file (GALERIA_CONFIG) overridden by environment variables.
type Config struct {
	Port    string `yaml:"port"`
	BaseURL string `yaml:"base_url"` // public URL of this server, used by the PDF export
	Title   string `yaml:"title"`

	CardSource string `yaml:"card_source"` // html, yaml or postgres
	CardsPath  string `yaml:"cards_path"`  // catalog page or cards file for html/yaml sources

	ProbeBackend string `yaml:"probe_backend"`  // http, file or drive
	ImageBaseURL string `yaml:"image_base_url"` // resolves relative image references for http probing
	StaticDir    string `yaml:"static_dir"`     // image root for file probing and /static serving

	DriveFolderID   string `yaml:"drive_folder_id"`
	CredentialsPath string `yaml:"credentials_path"`

	CacheDir string        `yaml:"cache_dir"`
	PageTTL  time.Duration `yaml:"page_ttl"`
	LogFile  string        `yaml:"log_file"`
}

// Defaults returns the default configuration
func Defaults() Config {
	return Config{
		Port:         "8080",
		Title:        "Cuadros",
		CardSource:   SourceHTML,
		CardsPath:    "static/index.html",
		ProbeBackend: ProbeFile,
		StaticDir:    "static",
		CacheDir:     "cache/images",
		PageTTL:      30 * time.Minute,
	}
}

// Load builds the configuration from defaults, the optional YAML file and the environment
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("GALERIA_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with the environment variables that are set
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &cfg.Port)
	str("BASE_URL", &cfg.BaseURL)
	str("GALERIA_TITLE", &cfg.Title)
	str("GALERIA_CARD_SOURCE", &cfg.CardSource)
	str("GALERIA_CARDS_PATH", &cfg.CardsPath)
	str("GALERIA_PROBE", &cfg.ProbeBackend)
	str("GALERIA_IMAGE_BASE_URL", &cfg.ImageBaseURL)
	str("GALERIA_STATIC_DIR", &cfg.StaticDir)
	str("BASE_GOOGLE_DRIVE_FOLDER_ID", &cfg.DriveFolderID)
	str("GOOGLE_APPLICATION_CREDENTIALS", &cfg.CredentialsPath)
	str("GALERIA_CACHE_DIR", &cfg.CacheDir)
	str("GALERIA_LOG_FILE", &cfg.LogFile)

	if v, ok := lookup("GALERIA_PAGE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// Plain numbers are minutes
			mins, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("invalid GALERIA_PAGE_TTL %q: %w", v, err)
			}
			d = time.Duration(mins) * time.Minute
		}
		cfg.PageTTL = d
	}

	// PORT from Render doesn't include the colon, a local .env might
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	return nil
}

// Validate checks that the selected backends have what they need
func (c Config) Validate() error {
	switch c.CardSource {
	case SourceHTML, SourceYAML:
		if c.CardsPath == "" {
			return fmt.Errorf("cards path is required for %s card source", c.CardSource)
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("unknown card source %q", c.CardSource)
	}

	switch c.ProbeBackend {
	case ProbeHTTP:
		if c.ImageBaseURL == "" && c.BaseURL == "" {
			return fmt.Errorf("image base url is required for http probing")
		}
	case ProbeFile:
		if c.StaticDir == "" {
			return fmt.Errorf("static dir is required for file probing")
		}
	case ProbeDrive:
		if c.DriveFolderID == "" || c.CredentialsPath == "" {
			return fmt.Errorf("BASE_GOOGLE_DRIVE_FOLDER_ID and GOOGLE_APPLICATION_CREDENTIALS are required for drive probing")
		}
	default:
		return fmt.Errorf("unknown probe backend %q", c.ProbeBackend)
	}

	if c.PageTTL <= 0 {
		return fmt.Errorf("page ttl must be positive")
	}
	return nil
}
