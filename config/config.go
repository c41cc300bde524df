package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the explicit configuration struct handed to the service at
// construction. Nothing downstream reads the process environment.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Google struct {
		ProjectID       string `yaml:"projectId"`
		Location        string `yaml:"location"`
		CredentialsFile string `yaml:"credentialsFile"`
	} `yaml:"google"`

	Translate struct {
		MaxPagesPerRequest int `yaml:"maxPagesPerRequest"`
		MaxConcurrent      int `yaml:"maxConcurrent"`
		// ConversionBucket enables the PDF-to-DOCX conversion path when
		// set; empty disables it.
		ConversionBucket string `yaml:"conversionBucket"`
	} `yaml:"translate"`

	Log struct {
		Level       string   `yaml:"level"`
		Encoding    string   `yaml:"encoding"`
		OutputPaths []string `yaml:"outputPaths"`
	} `yaml:"log"`
}

// Load reads the optional yaml config file, then applies environment
// overrides (a .env file is honored when present).
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)

	if cfg.Google.ProjectID == "" {
		return nil, fmt.Errorf("google project id must be set (GOOGLE_PROJECT_ID or config file)")
	}
	if cfg.Translate.MaxPagesPerRequest < 1 {
		cfg.Translate.MaxPagesPerRequest = 1
	}
	if cfg.Translate.MaxConcurrent < 1 {
		cfg.Translate.MaxConcurrent = 1
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Google.Location = "us-central1"
	cfg.Translate.MaxPagesPerRequest = 20
	cfg.Translate.MaxConcurrent = 5
	cfg.Log.Level = "info"
	cfg.Log.Encoding = "json"
	cfg.Log.OutputPaths = []string{"stdout"}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GOOGLE_PROJECT_ID"); v != "" {
		cfg.Google.ProjectID = v
	}
	if v := os.Getenv("GOOGLE_LOCATION"); v != "" {
		cfg.Google.Location = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.Google.CredentialsFile = v
	}
	if v := os.Getenv("CONVERSION_BUCKET"); v != "" {
		cfg.Translate.ConversionBucket = v
	}
	if v := os.Getenv("MAX_PAGES_PER_REQUEST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Translate.MaxPagesPerRequest = n
		}
	}
	if v := os.Getenv("MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Translate.MaxConcurrent = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
