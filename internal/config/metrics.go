package config

import "github.com/spf13/viper"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(v *viper.Viper) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolOrDefault(v, keyMetricsOn, defaultMetricsOn),
		Port:         stringOrDefault(v, keyMetricsPort, defaultMetricsPort),
		OtlpEndpoint: stringOrDefault(v, keyOtelEndpoint, ""),
		ServiceName:  stringOrDefault(v, keyOtelService, defaultOtelService),
		OtlpInsecure: boolOrDefault(v, keyOtelInsecure, defaultOtelInsecure),
	}
}
