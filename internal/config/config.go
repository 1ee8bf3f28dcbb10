package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "NEWS_VERIFIER_CONFIG"
	portEnv        = "PORT"
	newsAPIKeyEnv  = "NEWS_API_KEY"
	newsAPIURLEnv  = "NEWS_API_URL"
	databaseDSNEnv = "DATABASE_DSN"
	redisAddrEnv   = "REDIS_ADDR"
	logLevelEnv    = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Model    ModelConfig    `yaml:"model"`
	NewsAPI  NewsAPIConfig  `yaml:"newsApi"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Logging  LoggingConfig  `yaml:"logging"`
	Training TrainingConfig `yaml:"training"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`
}

// ModelConfig locates the persisted artifact pair.
type ModelConfig struct {
	VectorizerPath string `yaml:"vectorizerPath"`
	ClassifierPath string `yaml:"classifierPath"`
}

// NewsAPIConfig wires the external news search API.
type NewsAPIConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// DatabaseConfig describes Postgres connection details; an empty DSN
// disables check-history persistence.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig describes the headline cache; an empty address disables it.
type RedisConfig struct {
	Addr            string        `yaml:"addr"`
	TTL             time.Duration `yaml:"ttl"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

// ScraperConfig tunes the article extractor.
type ScraperConfig struct {
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoggingConfig selects log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TrainingConfig lists the corpus sources for the training CLI.
type TrainingConfig struct {
	Datasets []DatasetConfig `yaml:"datasets"`
}

// DatasetConfig describes one CSV source. LabelOverride, when present,
// replaces every label in the file; Primary marks the dataset whose
// absence aborts training.
type DatasetConfig struct {
	Path          string `yaml:"path"`
	LabelOverride *int   `yaml:"labelOverride"`
	Primary       bool   `yaml:"primary"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.NewsAPI.APIKey = v
	}

	if v := os.Getenv(newsAPIURLEnv); v != "" {
		c.NewsAPI.Endpoint = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Redis.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}
	if override.Server.Debug {
		base.Server.Debug = true
	}

	if override.Model.VectorizerPath != "" {
		base.Model.VectorizerPath = override.Model.VectorizerPath
	}
	if override.Model.ClassifierPath != "" {
		base.Model.ClassifierPath = override.Model.ClassifierPath
	}

	if override.NewsAPI.Endpoint != "" {
		base.NewsAPI.Endpoint = override.NewsAPI.Endpoint
	}
	if override.NewsAPI.APIKey != "" {
		base.NewsAPI.APIKey = override.NewsAPI.APIKey
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Redis.Addr != "" {
		base.Redis.Addr = override.Redis.Addr
	}
	if override.Redis.TTL != 0 {
		base.Redis.TTL = override.Redis.TTL
	}
	if override.Redis.RefreshInterval != 0 {
		base.Redis.RefreshInterval = override.Redis.RefreshInterval
	}

	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}
	if override.Scraper.Timeout != 0 {
		base.Scraper.Timeout = override.Scraper.Timeout
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Training.Datasets) > 0 {
		base.Training.Datasets = override.Training.Datasets
	}

	return base
}

func defaultConfig() Config {
	fakeLabel, realLabel := 0, 1
	return Config{
		Server: ServerConfig{Port: 5000},
		Model: ModelConfig{
			VectorizerPath: "models/tfidfvect.gob",
			ClassifierPath: "models/model.gob",
		},
		NewsAPI: NewsAPIConfig{
			Endpoint: "https://newsdata.io/api/1/news",
			APIKey:   "",
		},
		Redis: RedisConfig{
			TTL:             10 * time.Minute,
			RefreshInterval: 10 * time.Minute,
		},
		Scraper: ScraperConfig{Timeout: 20 * time.Second},
		Logging: LoggingConfig{Level: "info"},
		Training: TrainingConfig{
			Datasets: []DatasetConfig{
				{Path: "data/random_dataset.csv", Primary: true},
				{Path: "data/manual_fake_data.csv", LabelOverride: &fakeLabel},
				{Path: "data/manual_real_data.csv", LabelOverride: &realLabel},
				{Path: "data/new_real_news_data.csv", LabelOverride: &realLabel},
			},
		},
	}
}
