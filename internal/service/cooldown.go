package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type cooldownEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Cooldowns throttles commands per key, one use per period.
type Cooldowns struct {
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*cooldownEntry
}

func NewCooldowns(period time.Duration) *Cooldowns {
	return &Cooldowns{
		period:  period,
		now:     time.Now,
		entries: make(map[string]*cooldownEntry),
	}
}

// CooldownKey builds the key for a command used by a user.
func CooldownKey(command, userID string) string {
	return command + "-" + userID
}

// Allow records a use of key. When key is still cooling down it returns the
// remaining wait and false, and the attempt does not extend the cooldown.
func (c *Cooldowns) Allow(key string) (time.Duration, bool) {
	if c.period <= 0 {
		return 0, true
	}

	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &cooldownEntry{limiter: rate.NewLimiter(rate.Every(c.period), 1)}
		c.entries[key] = e
	}

	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay, false
	}
	e.lastSeen = now
	return 0, true
}

// Sweep drops keys whose cooldown has expired.
func (c *Cooldowns) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.lastSeen) >= c.period {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (c *Cooldowns) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				slog.Debug("cooldowns swept", "removed", n)
			}
		}
	}
}

// WaitSeconds rounds a cooldown wait up to whole seconds for display.
func WaitSeconds(d time.Duration) int {
	d = d.Round(time.Millisecond)
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}
