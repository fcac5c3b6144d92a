package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/set-night/crouton/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresenceStore struct {
	mu    sync.Mutex
	list  []domain.Presence
	calls int
}

func (f *fakePresenceStore) ListPresence(context.Context) ([]domain.Presence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]domain.Presence(nil), f.list...), nil
}

func (f *fakePresenceStore) set(list []domain.Presence) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = list
}

func (f *fakePresenceStore) loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingSetter struct {
	mu   sync.Mutex
	seen []domain.Presence
}

func (r *recordingSetter) set(_ context.Context, p domain.Presence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, p)
	return nil
}

func (r *recordingSetter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func TestPresenceNextEmpty(t *testing.T) {
	s := NewPresenceService(&fakePresenceStore{})
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Next()
	assert.ErrorIs(t, err, domain.ErrNoActivities)
	assert.ErrorIs(t, s.Rotate(context.Background()), domain.ErrNoActivities)
}

func TestPresenceRotate(t *testing.T) {
	store := &fakePresenceStore{list: []domain.Presence{
		{ID: 1, Activity: "kneading dough", Type: domain.ActivityPlaying},
		{ID: 2, Activity: "the oven", Type: domain.ActivityWatching},
	}}
	s := NewPresenceService(store)
	s.pick = func(n int) int { return 1 }
	require.NoError(t, s.Load(context.Background()))

	rec := &recordingSetter{}
	s.AddSetter(rec.set)
	s.AddSetter(func(context.Context, domain.Presence) error { return errors.New("offline") })

	require.NoError(t, s.Rotate(context.Background()))
	require.Equal(t, 1, rec.count())
	assert.Equal(t, "the oven", rec.seen[0].Activity)
}

func TestPresenceHandleNotification(t *testing.T) {
	store := &fakePresenceStore{}
	s := NewPresenceService(store)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	store.set([]domain.Presence{{ID: 3, Activity: "proofing", Type: domain.ActivityCustom}})
	require.NoError(t, s.HandleNotification(ctx, `{"op":"INSERT","id":3}`))

	p, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "proofing", p.Activity)

	assert.Error(t, s.HandleNotification(ctx, "not json"))
}

func TestPresenceWatchRetries(t *testing.T) {
	store := &fakePresenceStore{}
	s := NewPresenceService(store)
	ctx, cancel := context.WithCancel(context.Background())

	var attempts int
	listen := func(ctx context.Context, channel string, fn func(string)) error {
		attempts++
		assert.Equal(t, "presence_changed", channel)
		if attempts == 1 {
			return errors.New("connection reset")
		}
		fn(`{"op":"DELETE","id":1}`)
		cancel()
		<-ctx.Done()
		return nil
	}

	err := s.Watch(ctx, listen, "presence_changed", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	// One reload after reconnecting and one for the notification.
	assert.Equal(t, 2, store.loads())
}

func TestPresenceRun(t *testing.T) {
	store := &fakePresenceStore{list: []domain.Presence{{ID: 1, Activity: "baking"}}}
	s := NewPresenceService(store)
	require.NoError(t, s.Load(context.Background()))

	rec := &recordingSetter{}
	s.AddSetter(rec.set)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "@every 1h") }()

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Error(t, s.Run(context.Background(), "not a schedule"))
}
