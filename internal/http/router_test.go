package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeadle/dle-service/internal/app/play"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/http/handlers"
	"github.com/makeadle/dle-service/internal/metrics"
	"github.com/makeadle/dle-service/internal/providers"
	"github.com/makeadle/dle-service/internal/store"
	"github.com/makeadle/dle-service/internal/testutil"
)

type failingGuesses struct {
	providers.Scorer
}

func (failingGuesses) SubmitGuess(context.Context, string, int64) (dailygame.GuessResult, error) {
	return dailygame.GuessResult{}, &providers.TransportError{Op: providers.OpSubmitGuess, StatusCode: 503}
}

func newTestRouter(t *testing.T, scorer providers.Scorer) (nethttp.Handler, *metrics.Recorder) {
	t.Helper()
	if scorer == nil {
		scorer = testutil.FixtureScorer(t)
	}
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	svc := play.NewService(scorer, store.NewMemoryStore(), play.Options{Logger: logger, Recorder: rec})
	h := handlers.NewHandler(svc, logger, "https://dle.example", nil)
	return NewRouter(h, logger, rec), rec
}

func openSession(t *testing.T, router nethttp.Handler, mode string) handlers.SessionResponse {
	t.Helper()
	rr := testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions", handlers.OpenSessionRequest{Topic: "mobiledle", Mode: mode})
	testutil.AssertStatus(t, rr, nethttp.StatusCreated)
	var resp handlers.SessionResponse
	testutil.DecodeJSON(t, rr, &resp)
	require.NotEmpty(t, resp.ID)
	return resp
}

func TestHealthAndReady(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	openSession(t, router, "")
	rr = testutil.Serve(router, nethttp.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var body handlers.HealthResponse
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, 1, body.Sessions)
}

func TestTopicCatalog(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/topics/mobiledle", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var body handlers.CatalogResponse
	testutil.DecodeJSON(t, rr, &body)
	assert.Len(t, body.Modes, 3)

	rr = testutil.Serve(router, nethttp.MethodGet, "/topics/pokedle", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
}

func TestOpenSessionValidatesBody(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := testutil.Serve(router, nethttp.MethodPost, "/sessions", bytes.NewBufferString("{"))
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)

	rr = testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions", handlers.OpenSessionRequest{})
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)

	rr = testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions", handlers.OpenSessionRequest{Topic: "mobiledle", Mode: "karaoke"})
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
}

func TestGuessFlow(t *testing.T) {
	router, rec := newTestRouter(t, nil)
	sess := openSession(t, router, "")
	assert.Equal(t, game.StateReady, sess.Snapshot.State)
	require.NotEmpty(t, sess.Snapshot.Candidates)
	guess := sess.Snapshot.Candidates[0].ID

	rr := testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions/"+sess.ID+"/guesses", handlers.GuessRequest{AnswerID: guess})
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var resp handlers.GuessResponse
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, game.Applied, resp.Result)
	require.NotNil(t, resp.Attempt)
	assert.Len(t, resp.Snapshot.Attempts, 1)
	assert.Len(t, resp.Snapshot.Board, 1)

	rejected := nethttp.StatusUnprocessableEntity
	if resp.Snapshot.Terminal {
		rejected = nethttp.StatusConflict
	}
	// An answer already guessed has left the pool.
	rr = testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions/"+sess.ID+"/guesses", handlers.GuessRequest{AnswerID: guess})
	testutil.AssertStatus(t, rr, rejected)

	rr = testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions/"+sess.ID+"/guesses", handlers.GuessRequest{AnswerID: 999999})
	testutil.AssertStatus(t, rr, rejected)
	assert.GreaterOrEqual(t, rec.Game().Guesses[string(game.Applied)], 1)
}

func TestFailedGuessReturnsBadGateway(t *testing.T) {
	router, _ := newTestRouter(t, failingGuesses{testutil.FixtureScorer(t)})
	sess := openSession(t, router, "")

	rr := testutil.ServeJSON(t, router, nethttp.MethodPost, "/sessions/"+sess.ID+"/guesses",
		handlers.GuessRequest{AnswerID: sess.Snapshot.Candidates[0].ID})

	testutil.AssertStatus(t, rr, nethttp.StatusBadGateway)
	var resp handlers.GuessResponse
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, game.Failed, resp.Result)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, game.StateReady, resp.Snapshot.State)
	assert.Empty(t, resp.Snapshot.Attempts)
}

func TestSwitchModeAndReload(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	sess := openSession(t, router, "")

	rr := testutil.ServeJSON(t, router, nethttp.MethodPut, "/sessions/"+sess.ID+"/mode", handlers.SwitchModeRequest{Mode: "blurred"})
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var resp handlers.SessionResponse
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "/g/mobiledle/blurred", resp.Snapshot.Path)
	require.NotNil(t, resp.Snapshot.Reveal)

	rr = testutil.ServeJSON(t, router, nethttp.MethodPut, "/sessions/"+sess.ID+"/mode", handlers.SwitchModeRequest{Mode: "karaoke"})
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)

	rr = testutil.Serve(router, nethttp.MethodPost, "/sessions/"+sess.ID+"/reload", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	sess := openSession(t, router, "audio")

	rr := testutil.Serve(router, nethttp.MethodGet, "/sessions", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var list []handlers.SessionResponse
	testutil.DecodeJSON(t, rr, &list)
	require.Len(t, list, 1)

	rr = testutil.Serve(router, nethttp.MethodDelete, "/sessions/"+sess.ID, nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNoContent)

	rr = testutil.Serve(router, nethttp.MethodGet, "/sessions/"+sess.ID, nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
	var errBody handlers.ErrorResponse
	testutil.DecodeJSON(t, rr, &errBody)
	assert.NotEmpty(t, errBody.RequestID)
}

func TestShareQR(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/g/mobiledle/share.png?mode=audio", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr = testutil.Serve(router, nethttp.MethodGet, "/g/mobiledle/share.png?mode=karaoke", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
}

func TestOpenAPIDocument(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/openapi.json", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Contains(t, doc.Paths, "/sessions/{id}/guesses")
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(nethttp.MethodGet, "/nope", nil))
	assert.Equal(t, nethttp.StatusNotFound, rr.Code)
}
