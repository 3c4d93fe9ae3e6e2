/* limiter.go
 * Contains the per user command rate limiter
 * Authors: Zachary Bower
 */

package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the map size before idle users are pruned
	cleanupThreshold = 500
	maxIdleAge       = 10 * time.Minute
)

type userEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter hands out one token bucket per discord user
type UserRateLimiter struct {
	users map[string]*userEntry
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

func NewUserRateLimiter(r rate.Limit, b int) *UserRateLimiter {
	if b < 1 {
		b = 1
	}
	return &UserRateLimiter{
		users: make(map[string]*userEntry),
		r:     r,
		b:     b,
	}
}

// Allow reports whether the user may run a command now, and uses a token if they can
func (l *UserRateLimiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.users) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for id, e := range l.users {
			if e.lastSeen.Before(cutoff) {
				delete(l.users, id)
			}
		}
	}

	e, ok := l.users[userID]
	if !ok {
		e = &userEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.users[userID] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
