package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/set-night/crouton/internal/domain"
)

type PresenceStore interface {
	ListPresence(ctx context.Context) ([]domain.Presence, error)
}

// ListenFunc blocks delivering notifications on channel to fn until ctx is done.
type ListenFunc func(ctx context.Context, channel string, fn func(payload string)) error

// PresenceSetter shows an activity on a platform.
type PresenceSetter func(ctx context.Context, p domain.Presence) error

type PresenceService struct {
	store PresenceStore
	pick  func(n int) int

	mu         sync.RWMutex
	activities []domain.Presence
	setters    []PresenceSetter
}

func NewPresenceService(store PresenceStore) *PresenceService {
	return &PresenceService{store: store, pick: rand.IntN}
}

// AddSetter registers a platform to receive rotated activities.
func (s *PresenceService) AddSetter(fn PresenceSetter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setters = append(s.setters, fn)
}

// Load replaces the cached activities with the stored ones.
func (s *PresenceService) Load(ctx context.Context) error {
	list, err := s.store.ListPresence(ctx)
	if err != nil {
		return fmt.Errorf("load presence: %w", err)
	}

	s.mu.Lock()
	s.activities = list
	s.mu.Unlock()

	slog.Info("presence activities loaded", "count", len(list))
	return nil
}

// Next picks a random cached activity.
func (s *PresenceService) Next() (domain.Presence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.activities) == 0 {
		return domain.Presence{}, domain.ErrNoActivities
	}
	return s.activities[s.pick(len(s.activities))], nil
}

// Rotate shows a random activity on every registered platform.
func (s *PresenceService) Rotate(ctx context.Context) error {
	p, err := s.Next()
	if err != nil {
		return err
	}

	s.mu.RLock()
	setters := append([]PresenceSetter(nil), s.setters...)
	s.mu.RUnlock()

	for _, set := range setters {
		if err := set(ctx, p); err != nil {
			slog.Error("failed to set presence", "error", err, "activity", p.Activity)
		}
	}
	return nil
}

// HandleNotification reloads the activities after a presence_changed
// notification. The payload only identifies the row, so the whole list is
// read again.
func (s *PresenceService) HandleNotification(ctx context.Context, payload string) error {
	var change domain.PresenceChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return fmt.Errorf("decode presence change: %w", err)
	}
	slog.Debug("presence changed", "op", change.Op, "id", change.ID)
	return s.Load(ctx)
}

// Watch keeps the cache in sync with the database until ctx is done,
// reconnecting after retryDelay when the listener fails.
func (s *PresenceService) Watch(ctx context.Context, listen ListenFunc, channel string, retryDelay time.Duration) error {
	for {
		err := listen(ctx, channel, func(payload string) {
			if err := s.HandleNotification(ctx, payload); err != nil {
				slog.Error("failed to apply presence change", "error", err)
			}
		})
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("presence listener stopped, retrying", "error", err, "delay", retryDelay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryDelay):
		}

		// Changes may have been missed while disconnected.
		if err := s.Load(ctx); err != nil {
			slog.Error("failed to reload presence", "error", err)
		}
	}
}

// Run rotates once right away and then on schedule until ctx is done.
func (s *PresenceService) Run(ctx context.Context, schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { s.rotateLogged(ctx) }); err != nil {
		return fmt.Errorf("presence schedule %q: %w", schedule, err)
	}

	s.rotateLogged(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (s *PresenceService) rotateLogged(ctx context.Context) {
	if err := s.Rotate(ctx); err != nil {
		slog.Warn("presence rotation skipped", "error", err)
	}
}
