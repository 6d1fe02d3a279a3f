package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// redis, local plan store tier of the service
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	// plan generation
	GenerationModels []string `toml:"generation_models"`
	GeminiBaseURL    string   `toml:"gemini_base_url"`
	// image generation
	ImageModel   string `toml:"image_model"`
	ImageBaseURL string `toml:"image_base_url"`
	// speech
	ElevenLabsBaseURL string `toml:"elevenlabs_base_url"`
	DefaultVoiceID    string `toml:"default_voice_id"`
	TTSModelID        string `toml:"tts_model_id"`
	TTSMaxCharacters  int    `toml:"tts_max_characters"`
	// cli
	LocalStorePath string `toml:"local_store_path"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		env = "development"
	case "prod", "production":
		cfg = t.Production
		env = "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	cfg.Environment = env
	cfg.applyDefaults()
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return t.Get(env)
}

func (c *Config) applyDefaults() {
	if len(c.GenerationModels) == 0 {
		c.GenerationModels = DefaultGenerationModels()
	}
	if c.GeminiBaseURL == "" {
		c.GeminiBaseURL = "https://generativelanguage.googleapis.com/"
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.ImageModel == "" {
		c.ImageModel = "imagegeneration@001"
	}
	if c.ElevenLabsBaseURL == "" {
		c.ElevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	}
	if c.DefaultVoiceID == "" {
		c.DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	}
	if c.TTSModelID == "" {
		c.TTSModelID = "eleven_monolingual_v1"
	}
	if c.TTSMaxCharacters <= 0 {
		c.TTSMaxCharacters = 4000
	}
	if c.LocalStorePath == "" {
		c.LocalStorePath = "./fitcoach.db"
	}
}

// DefaultGenerationModels is the fallback order, most capable first.
func DefaultGenerationModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-pro",
		"gemini-1.5-pro",
	}
}
