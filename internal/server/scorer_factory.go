package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/makeadle/dle-service/internal/config"
	"github.com/makeadle/dle-service/internal/metrics"
	"github.com/makeadle/dle-service/internal/providers"
	"github.com/makeadle/dle-service/internal/providers/fixture"
	"github.com/makeadle/dle-service/internal/providers/remote"
	"github.com/makeadle/dle-service/internal/timeutil"
)

// BuildScorer selects the configured scorer and wraps it with caching of
// catalogue reads, retries and instrumentation.
func BuildScorer(cfg config.ScorerConfig, logger *slog.Logger, recorder *metrics.Recorder) (providers.Scorer, error) {
	base, err := selectScorer(cfg)
	if err != nil {
		return nil, err
	}
	instrumented := providers.NewInstrumentedScorer(base, logger, recorder, cfg.Kind)
	retrying := providers.NewRetryingScorer(instrumented, logger, cfg.RetryAttempts, cfg.RetryBackoff)
	return providers.NewCachingScorer(retrying, cfg.CatalogTTL), nil
}

func selectScorer(cfg config.ScorerConfig) (providers.Scorer, error) {
	switch cfg.Kind {
	case config.ScorerRemote:
		return remote.NewClient(remote.Config{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		}), nil
	case config.ScorerFixture, "":
		ds, err := loadDataset(cfg.FixturePath)
		if err != nil {
			return nil, err
		}
		return fixture.New(ds, fixture.WithLocation(timeutil.ResolveLocation(cfg.Timezone))), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", cfg.Kind)
	}
}

func loadDataset(path string) (*fixture.Dataset, error) {
	if path == "" {
		return fixture.Default()
	}
	ds, err := fixture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture catalogue: %w", err)
	}
	return ds, nil
}
