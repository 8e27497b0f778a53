package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the CLI and server.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	PublicURL string
	Scorer    ScorerConfig
	Session   SessionConfig
	Metrics   MetricsConfig
}

// ScorerConfig selects and tunes the scorer backend.
type ScorerConfig struct {
	Kind          string
	BaseURL       string
	APIKey        string
	Timeout       Duration
	RetryAttempts int
	RetryBackoff  Duration
	CatalogTTL    Duration
	HistoryOrder  string
	FixturePath   string
	Timezone      string
}

// SessionConfig controls hosted game sessions.
type SessionConfig struct {
	IdleTimeout   Duration
	SweepInterval Duration
	Strict        bool
}

// Load resolves configuration from v with sensible defaults. Invalid values
// fall back to the default rather than failing.
func Load(v *viper.Viper) Config {
	if v == nil {
		v = NewViper()
	}
	return Config{
		Port:      stringOrDefault(v, keyPort, defaultPort),
		LogLevel:  stringOrDefault(v, keyLogLevel, defaultLogLevel),
		LogFormat: stringOrDefault(v, keyLogFormat, defaultLogFormat),
		PublicURL: strings.TrimSuffix(stringOrDefault(v, keyPublicURL, defaultPublicURL), "/"),
		Scorer:    loadScorer(v),
		Session:   loadSession(v),
		Metrics:   loadMetrics(v),
	}
}

func loadScorer(v *viper.Viper) ScorerConfig {
	return ScorerConfig{
		Kind:          strings.ToLower(stringOrDefault(v, keyScorer, defaultScorer)),
		BaseURL:       stringOrDefault(v, keyScorerURL, defaultScorerURL),
		APIKey:        stringOrDefault(v, keyScorerAPIKey, ""),
		Timeout:       durationOrDefault(v, keyScorerTimeout, defaultScorerTimeout),
		RetryAttempts: intOrDefault(v, keyRetries, defaultRetries),
		RetryBackoff:  durationOrDefault(v, keyRetryBackoff, defaultRetryBackoff),
		CatalogTTL:    durationOrDefault(v, keyCatalogTTL, defaultCatalogTTL),
		HistoryOrder:  stringOrDefault(v, keyHistoryOrder, defaultHistoryOrder),
		FixturePath:   stringOrDefault(v, keyFixturePath, ""),
		Timezone:      stringOrDefault(v, keyTimezone, defaultTimezone),
	}
}

func loadSession(v *viper.Viper) SessionConfig {
	return SessionConfig{
		IdleTimeout:   durationOrDefault(v, keyIdleTimeout, defaultIdleTimeout),
		SweepInterval: durationOrDefault(v, keySweepInterval, defaultSweepInterval),
		Strict:        boolOrDefault(v, keyStrict, false),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Scorer.Kind {
	case ScorerRemote, ScorerFixture:
	default:
		return fmt.Errorf("unknown scorer %q (want %s or %s)", c.Scorer.Kind, ScorerRemote, ScorerFixture)
	}
	switch c.Scorer.HistoryOrder {
	case "oldest-first", "newest-first":
	default:
		return fmt.Errorf("unknown history order %q", c.Scorer.HistoryOrder)
	}
	return nil
}
