package providers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func transportFailure() error {
	return &TransportError{Op: "test", Err: errors.New("connection refused")}
}

func TestRetryingScorerRetriesReadsAndSucceeds(t *testing.T) {
	stub := newStubScorer(2, transportFailure())
	rs := NewRetryingScorer(stub, slog.Default(), 3, time.Millisecond)

	dg, err := rs.FetchDailyGame(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if dg.ID != "dg-1" || dg.ModeID != 7 {
		t.Fatalf("unexpected daily game %+v", dg)
	}
	if got := stub.count(OpFetchDaily); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRetryingScorerStopsAfterMaxAttempts(t *testing.T) {
	stub := newStubScorer(5, transportFailure())
	rs := NewRetryingScorer(stub, nil, 2, time.Millisecond)

	_, err := rs.FetchAttemptHistory(context.Background(), "dg-1")
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if got := stub.count(OpFetchHistory); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestRetryingScorerDoesNotRetryServiceErrors(t *testing.T) {
	stub := newStubScorer(5, &ServiceError{Code: "41", Desc: "invalid daily game"})
	rs := NewRetryingScorer(stub, nil, 3, time.Millisecond)

	_, err := rs.FetchAttemptHistory(context.Background(), "dg-1")
	if _, ok := AsServiceError(err); !ok {
		t.Fatalf("expected service error to surface unwrapped, got %v", err)
	}
	if got := stub.count(OpFetchHistory); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestRetryingScorerNeverRetriesGuesses(t *testing.T) {
	stub := newStubScorer(1, transportFailure())
	rs := NewRetryingScorer(stub, nil, 3, time.Millisecond)

	if _, err := rs.SubmitGuess(context.Background(), "dg-1", 4); err == nil {
		t.Fatal("expected the first guess failure to surface")
	}
	if got := stub.count(OpSubmitGuess); got != 1 {
		t.Fatalf("expected exactly one submission, got %d", got)
	}
}

func TestRetryingScorerRespectsContextCancel(t *testing.T) {
	stub := newStubScorer(5, transportFailure())
	rs := NewRetryingScorer(stub, nil, 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rs.FetchModes(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingScorerUsesCustomBackoff(t *testing.T) {
	stub := newStubScorer(1, transportFailure())
	rs := NewRetryingScorer(stub, nil, 2, time.Hour).(*retryingScorer)

	built := 0
	rs.newBackOff = func() backoff.BackOff {
		built++
		return &backoff.ZeroBackOff{}
	}

	if _, err := rs.FetchTopicBySlug(context.Background(), "mobiledle"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if built != 1 {
		t.Fatalf("expected custom backoff to be used once, got %d", built)
	}
}
