package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NormalizeFlagName lets --scorer_url and --scorer-url name the same flag.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// RegisterFlags declares every setting on fs. Flag defaults are left empty so
// that Load can tell an unset value from an explicit one and apply its own
// fallback rules.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(NormalizeFlagName)

	fs.String(keyLogLevel, "", "log level: debug, info, warn, error (env: DLE_LOG_LEVEL)")
	fs.String(keyLogFormat, "", "log format: text or json (env: DLE_LOG_FORMAT)")
	fs.String(keyScorer, "", "scorer backend: remote or fixture (env: DLE_SCORER)")
	fs.String(keyScorerURL, "", "base URL of the remote scorer (env: DLE_SCORER_URL)")
	fs.String(keyScorerAPIKey, "", "bearer token for the remote scorer (env: DLE_SCORER_API_KEY)")
	fs.String(keyScorerTimeout, "", "timeout per scorer request (env: DLE_SCORER_TIMEOUT)")
	fs.String(keyRetries, "", "attempts per scorer read (env: DLE_SCORER_RETRIES)")
	fs.String(keyRetryBackoff, "", "initial backoff between scorer reads (env: DLE_SCORER_RETRY_BACKOFF)")
	fs.String(keyCatalogTTL, "", "how long topic catalogues are cached (env: DLE_CATALOG_TTL)")
	fs.String(keyHistoryOrder, "", "order of scorer attempt history: oldest-first or newest-first (env: DLE_HISTORY_ORDER)")
	fs.String(keyFixturePath, "", "JSON catalogue for the fixture scorer; empty uses the bundled one (env: DLE_FIXTURE_PATH)")
	fs.String(keyTimezone, "", "zone in which fixture daily games roll over (env: DLE_TIMEZONE)")
	fs.String(keyStrict, "", "panic on guesses for non-candidates (env: DLE_STRICT)")
}

// RegisterServeFlags declares the settings only the HTTP server uses.
func RegisterServeFlags(fs *pflag.FlagSet) {
	fs.StringP(keyPort, "p", "", "port to listen on (env: DLE_PORT)")
	fs.String(keyPublicURL, "", "externally visible base URL, used in share links (env: DLE_PUBLIC_URL)")
	fs.String(keyIdleTimeout, "", "time before idle sessions are evicted (env: DLE_SESSION_IDLE_TIMEOUT)")
	fs.String(keySweepInterval, "", "how often idle sessions are swept (env: DLE_SESSION_SWEEP_INTERVAL)")
	fs.String(keyMetricsOn, "", "serve Prometheus metrics (env: DLE_METRICS_ENABLED)")
	fs.String(keyMetricsPort, "", "port for the metrics listener (env: DLE_METRICS_PORT)")
	fs.String(keyOtelEndpoint, "", "OTLP/HTTP metrics endpoint (env: DLE_OTLP_ENDPOINT)")
	fs.String(keyOtelInsecure, "", "send OTLP without TLS (env: DLE_OTLP_INSECURE)")
	fs.String(keyOtelService, "", "service name reported to telemetry (env: DLE_OTEL_SERVICE_NAME)")
}

// BindFlags makes v resolve every flag in fs, with explicit flags taking
// precedence over the environment.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}
