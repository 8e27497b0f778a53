package play

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/providers"
	"github.com/makeadle/dle-service/internal/store"
	"github.com/makeadle/dle-service/internal/testutil"
)

type brokenDaily struct {
	providers.Scorer
}

func (brokenDaily) FetchDailyGame(context.Context, int64) (dailygame.DailyGame, error) {
	return dailygame.DailyGame{}, providers.ErrProviderUnavailable
}

func TestCatalogLoadsModesAndAnswers(t *testing.T) {
	svc := NewService(testutil.FixtureScorer(t), store.NewMemoryStore(), Options{})

	cat, err := svc.Catalog(context.Background(), "mobiledle")

	require.NoError(t, err)
	assert.Equal(t, "mobiledle", cat.Topic.Slug)
	assert.Len(t, cat.Modes, 3)
	assert.NotEmpty(t, cat.Answers)
}

func TestCatalogUnknownTopic(t *testing.T) {
	svc := NewService(testutil.FixtureScorer(t), store.NewMemoryStore(), Options{})

	_, err := svc.Catalog(context.Background(), "pokedle")

	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestOpenHostsReadySession(t *testing.T) {
	svc := NewService(testutil.FixtureScorer(t), store.NewMemoryStore(), Options{})

	entry, err := svc.Open(context.Background(), "mobiledle", "audio")
	require.NoError(t, err)

	got, err := svc.Session(entry.ID)
	require.NoError(t, err)
	snap := got.Session.Snapshot()
	assert.Equal(t, game.StateReady, snap.State)
	assert.Equal(t, catalog.KindAudio, snap.Mode.Kind)
	assert.Equal(t, "/g/mobiledle/audio", snap.Path)
	for _, c := range snap.Candidates {
		assert.Equal(t, "HERO", c.AnswerType)
	}
	assert.Len(t, svc.Sessions(), 1)
}

func TestOpenPlaysAGuess(t *testing.T) {
	svc := NewService(testutil.FixtureScorer(t), store.NewMemoryStore(), Options{})
	entry, err := svc.Open(context.Background(), "mobiledle", "")
	require.NoError(t, err)

	sess := entry.Session
	first := sess.Snapshot().Candidates[0]
	out, err := sess.SubmitGuess(context.Background(), first.ID)

	require.NoError(t, err)
	assert.Equal(t, game.Applied, out.Result)
	snap := sess.Snapshot()
	require.Len(t, snap.Attempts, 1)
	assert.Equal(t, first.ID, snap.Attempts[0].Answer.ID)
}

func TestOpenUnknownMode(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewService(testutil.FixtureScorer(t), s, Options{})

	_, err := svc.Open(context.Background(), "mobiledle", "karaoke")

	assert.ErrorIs(t, err, game.ErrUnknownMode)
	assert.Equal(t, 0, s.Len())
}

func TestOpenKeepsSessionWhenLoadFails(t *testing.T) {
	svc := NewService(brokenDaily{testutil.FixtureScorer(t)}, store.NewMemoryStore(), Options{})

	entry, err := svc.Open(context.Background(), "mobiledle", "")

	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, game.StateError, entry.Session.State())
}

func TestCloseSession(t *testing.T) {
	svc := NewService(testutil.FixtureScorer(t), store.NewMemoryStore(), Options{})
	entry, err := svc.Open(context.Background(), "mobiledle", "")
	require.NoError(t, err)

	require.NoError(t, svc.Close(entry.ID))

	_, err = svc.Session(entry.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.ErrorIs(t, svc.Close(entry.ID), ErrSessionNotFound)
}

func TestServiceWithoutStoreBuildsButDoesNotHost(t *testing.T) {
	svc := NewService(testutil.FixtureScorer(t), nil, Options{})

	sess, err := svc.NewSession(context.Background(), "mobiledle", "")
	require.NoError(t, err)
	require.NoError(t, sess.Start(context.Background()))
	assert.Equal(t, game.StateReady, sess.State())

	_, err = svc.Open(context.Background(), "mobiledle", "")
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = svc.Session("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Close("missing"), ErrSessionNotFound)
	assert.Empty(t, svc.Sessions())
}
