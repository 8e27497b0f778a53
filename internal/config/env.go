package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// NewViper returns a viper instance reading DLE_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func stringOrDefault(v *viper.Viper, key, defaultValue string) string {
	if val := strings.TrimSpace(v.GetString(key)); val != "" {
		return val
	}
	return defaultValue
}

// valueOrDefault parses the raw value for key, keeping the default when the
// key is unset or parse rejects it.
func valueOrDefault[T any](v *viper.Viper, key string, defaultValue T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	if val, ok := parse(raw); ok {
		return val
	}
	return defaultValue
}

func durationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	return valueOrDefault(v, key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func intOrDefault(v *viper.Viper, key string, defaultValue int) int {
	return valueOrDefault(v, key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	return valueOrDefault(v, key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes":
			return true, true
		case "0", "false", "no":
			return false, true
		}
		return false, false
	})
}
