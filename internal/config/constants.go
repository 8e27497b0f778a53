package config

import "time"

// EnvPrefix is prepended to every key when read from the environment,
// e.g. scorer-url is DLE_SCORER_URL.
const EnvPrefix = "DLE"

const (
	keyPort      = "port"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyPublicURL = "public-url"

	keyScorer        = "scorer"
	keyScorerURL     = "scorer-url"
	keyScorerAPIKey  = "scorer-api-key"
	keyScorerTimeout = "scorer-timeout"
	keyRetries       = "scorer-retries"
	keyRetryBackoff  = "scorer-retry-backoff"
	keyCatalogTTL    = "catalog-ttl"
	keyHistoryOrder  = "history-order"
	keyFixturePath   = "fixture-path"
	keyTimezone      = "timezone"

	keyIdleTimeout   = "session-idle-timeout"
	keySweepInterval = "session-sweep-interval"
	keyStrict        = "strict"

	keyMetricsOn    = "metrics-enabled"
	keyMetricsPort  = "metrics-port"
	keyOtelEndpoint = "otlp-endpoint"
	keyOtelInsecure = "otlp-insecure"
	keyOtelService  = "otel-service-name"
)

const (
	ScorerRemote  = "remote"
	ScorerFixture = "fixture"
)

const (
	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultPublicURL = "http://localhost:4000"

	defaultScorer        = ScorerFixture
	defaultScorerURL     = "http://localhost:31500"
	defaultScorerTimeout = 10 * Duration(time.Second)
	defaultRetries       = 3
	defaultRetryBackoff  = 200 * Duration(time.Millisecond)
	defaultCatalogTTL    = 5 * Duration(time.Minute)
	defaultHistoryOrder  = "oldest-first"
	defaultTimezone      = "UTC"

	// Sessions idle longer than this are evicted by the sweeper.
	defaultIdleTimeout   = 60 * Duration(time.Minute)
	defaultSweepInterval = Duration(time.Minute)

	defaultMetricsOn    = true
	defaultMetricsPort  = "9090"
	defaultOtelInsecure = true
	defaultOtelService  = "dle-service"
)
