package testutil

import (
	"testing"

	"github.com/makeadle/dle-service/internal/providers/fixture"
)

// FixtureScorer returns the bundled fixture scorer pinned to FixedDay.
func FixtureScorer(t *testing.T) *fixture.Provider {
	t.Helper()
	ds, err := fixture.Default()
	if err != nil {
		t.Fatalf("load fixture catalogue: %v", err)
	}
	return fixture.New(ds, fixture.WithClock(NowAt(FixedDay)))
}
