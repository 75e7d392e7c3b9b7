// Package redis serializes status transitions of one order across service
// instances with a short-lived Redis lock.
package redis

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "laundry:order-lock:"
	defaultTTL     = 10 * time.Second
	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ ports.OrderLocker = (*OrderLocker)(nil)

// OrderLocker implements ports.OrderLocker with SET NX PX.
type OrderLocker struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewOrderLocker creates a locker. A ttl of zero or less uses 10 seconds.
func NewOrderLocker(client redis.Cmdable, ttl time.Duration) *OrderLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &OrderLocker{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Lock takes the lock of orderID without waiting. It returns
// ports.ErrOrderLocked when another holder has it. The returned unlock is
// safe to call more than once.
func (l *OrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (func(), error) {
	key := keyPrefix + orderID.String()
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock order %s: %w", orderID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrOrderLocked, orderID)
	}

	released := false
	unlock := func() {
		if released {
			return
		}
		released = true

		// The caller's context may already be done when unlocking.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}
	return unlock, nil
}
