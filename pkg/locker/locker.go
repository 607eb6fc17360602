// Package locker provides short-lived exclusive locks keyed by name. Redis backs them when several
// processes share the database, an in-process map is used otherwise.
package locker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ReleaseFunc releases an acquired lock
type ReleaseFunc func()

// Local is an in-process locker
type Local struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocal makes an in-process locker
func NewLocal() *Local {
	return &Local{held: map[string]struct{}{}}
}

// TryLock acquires the key if nobody holds it. It never blocks and never fails.
func (l *Local) TryLock(_ context.Context, key string) (ReleaseFunc, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, false, nil
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true, nil
}

// releaseScript deletes the key only if it still holds our token, so an expired lock taken over
// by another owner is left alone
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a locker shared by all processes using the same redis
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to redis by url, e.g. redis://localhost:6379/0. Locks expire after ttl
// if the holder never releases them.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{client: client, prefix: "leadfeed:lock:", ttl: ttl}, nil
}

// TryLock acquires the key with SET NX PX. A redis failure is returned as an error.
func (r *Redis) TryLock(ctx context.Context, key string) (ReleaseFunc, bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, r.prefix+key, token, r.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// release with a fresh context, the caller's one may be canceled by now
			relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = releaseScript.Run(relCtx, r.client, []string{r.prefix + key}, token).Err()
		})
	}, true, nil
}

// Close closes the redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
