package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const DefaultUpstreamBaseURL = "https://backend.piyushshivkumarshhri.com"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Report    ReportConfig    `yaml:"report"`
	Downloads DownloadsConfig `yaml:"downloads"`
	Minio     MinioConfig     `yaml:"minio"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// UpstreamConfig points at the records API serving /api/{kind}/bymonth/{start}/{end}
type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 = no client timeout
}

type ReportConfig struct {
	Timezone   string `yaml:"timezone"`
	DateLayout string `yaml:"date_layout"`
}

type DownloadsConfig struct {
	TTLMinutes    int    `yaml:"ttl_minutes"`
	MaxArtifacts  int    `yaml:"max_artifacts"`
	SigningSecret string `yaml:"signing_secret"`
}

type MinioConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	UseSSL        bool   `yaml:"use_ssl"`
	ExpireMinutes int    `yaml:"expire_minutes"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VASTU_UPSTREAM_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("VASTU_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.TimeoutSeconds < 0 {
		cfg.Upstream.TimeoutSeconds = 0
	}
	if cfg.Report.Timezone == "" {
		cfg.Report.Timezone = "UTC"
	}
	if cfg.Report.DateLayout == "" {
		cfg.Report.DateLayout = "1/2/2006"
	}
	if cfg.Downloads.TTLMinutes == 0 {
		cfg.Downloads.TTLMinutes = 10
	}
	if cfg.Downloads.MaxArtifacts == 0 {
		cfg.Downloads.MaxArtifacts = 100
	}
	if cfg.Downloads.SigningSecret == "" {
		cfg.Downloads.SigningSecret = randomSecret()
	}
	if cfg.Minio.ExpireMinutes == 0 {
		cfg.Minio.ExpireMinutes = 15
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 60
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
