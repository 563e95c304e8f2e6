// Package config loads the recipegen YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cache types.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CorpusConfig points at the recipe dataset.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// IndexConfig configures similarity queries.
type IndexConfig struct {
	TopN int `yaml:"top_n"`
}

// SamplerConfig bounds the ingredient sample sent with each request.
type SamplerConfig struct {
	PerEntry int `yaml:"per_entry"`
	MaxTotal int `yaml:"max_total"`
}

// GeneratorConfig configures the chat-completions endpoint. The API key
// itself is read from the environment variable named by APIKeyEnv.
type GeneratorConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIKeyEnv    string `yaml:"api_key_env"`
	Model        string `yaml:"model"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
	SystemPrompt string `yaml:"system_prompt"`
}

// RedisConfig contains connection details for the redis cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Type       string       `yaml:"type"`
	TTLSecs    int          `yaml:"ttl_secs"`
	MaxEntries int          `yaml:"max_entries"`
	Redis      *RedisConfig `yaml:"redis,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Debug     bool            `yaml:"debug"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Index     IndexConfig     `yaml:"index"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Generator GeneratorConfig `yaml:"generator"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/recipegen/config.yaml.
// If neither exists, it writes defaults to ~/.config/recipegen/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings that cannot be used.
func (c *AppConfig) Validate() error {
	switch c.Cache.Type {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache type %q", c.Cache.Type)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// APIKey reads the generator API key from the configured environment variable.
func (g GeneratorConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(g.APIKeyEnv))
}

// MaskSecret hides all but the last four characters of s.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "recipegen", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "recipes.csv"
	}
	if cfg.Index.TopN <= 0 {
		cfg.Index.TopN = 10
	}
	if cfg.Sampler.PerEntry <= 0 {
		cfg.Sampler.PerEntry = 5
	}
	if cfg.Sampler.MaxTotal <= 0 {
		cfg.Sampler.MaxTotal = 10
	}
	g := &cfg.Generator
	if g.BaseURL == "" {
		g.BaseURL = "https://api.deepseek.com"
	}
	if g.APIKeyEnv == "" {
		g.APIKeyEnv = "DEEPSEEK_API_KEY"
	}
	if g.Model == "" {
		g.Model = "deepseek-chat"
	}
	if g.TimeoutSecs <= 0 {
		g.TimeoutSecs = 60
	}
	if g.SystemPrompt == "" {
		g.SystemPrompt = "You are a chef creating delicious recipes."
	}
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = CacheNone
	}
	if cfg.Cache.TTLSecs <= 0 {
		cfg.Cache.TTLSecs = 3600
	}
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = 1000
	}
	if cfg.Cache.Type == CacheRedis {
		if cfg.Cache.Redis == nil {
			cfg.Cache.Redis = &RedisConfig{}
		}
		if cfg.Cache.Redis.Addr == "" {
			cfg.Cache.Redis.Addr = "localhost:6379"
		}
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}
