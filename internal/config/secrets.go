package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Secrets are never kept in the TOML file.
type Secrets struct {
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	ImageAPIKey      string `env:"IMAGE_API_KEY"`
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	RemoteStoreURL   string `env:"REMOTE_STORE_URL"`
	RemoteStoreKey   string `env:"REMOTE_STORE_KEY"`
	RedisPassword    string `env:"FITCOACH_REDIS_PASS"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	SentryDSN        string `env:"SENTRY_DSN"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return loadSecrets(ctx, envconfig.OsLookuper())
}

func loadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	if s.ImageAPIKey == "" {
		s.ImageAPIKey = s.GeminiAPIKey
	}
	return &s, nil
}

// RemoteStoreEnabled reports whether both halves of the remote store
// credentials are present. One without the other disables the tier.
func (s *Secrets) RemoteStoreEnabled() bool {
	return s.RemoteStoreURL != "" && s.RemoteStoreKey != ""
}
