package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// callLockKeyPrefix is the prefix for per-issue call leases
	callLockKeyPrefix = "escalation_call:"
)

// releaseScript deletes the key only while it still holds this owner's token, so an expired
// lease re-acquired by another instance is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCallLock is a per-issue call lease shared by every scheduler instance.
type RedisCallLock struct {
	client *redis.Client
	owner  string

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedisCallLock creates a lease holder identified by a random owner ID.
func NewRedisCallLock(client *redis.Client) *RedisCallLock {
	return &RedisCallLock{
		client: client,
		owner:  uuid.NewString(),
		tokens: make(map[string]string),
	}
}

// buildKey builds the Redis key for a call lease
// Format: escalation_call:{issue_sid}
func (l *RedisCallLock) buildKey(issueSID string) string {
	return callLockKeyPrefix + issueSID
}

// TryAcquire takes the lease with SetNX. It returns false when another holder has it.
func (l *RedisCallLock) TryAcquire(ctx context.Context, issueSID string, ttl time.Duration) (bool, error) {
	token := l.owner + ":" + uuid.NewString()

	acquired, err := l.client.SetNX(ctx, l.buildKey(issueSID), token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire call lease: %w", err)
	}
	if !acquired {
		return false, nil
	}

	l.mu.Lock()
	l.tokens[issueSID] = token
	l.mu.Unlock()
	return true, nil
}

// Release drops the lease if this instance still owns it.
func (l *RedisCallLock) Release(ctx context.Context, issueSID string) error {
	l.mu.Lock()
	token, ok := l.tokens[issueSID]
	delete(l.tokens, issueSID)
	l.mu.Unlock()
	if !ok {
		return nil
	}

	if err := releaseScript.Run(ctx, l.client, []string{l.buildKey(issueSID)}, token).Err(); err != nil {
		return fmt.Errorf("failed to release call lease: %w", err)
	}
	return nil
}

// MemoryCallLock is the single-process lease used when Redis is disabled.
type MemoryCallLock struct {
	mu     sync.Mutex
	leases map[string]time.Time
	now    func() time.Time
}

func NewMemoryCallLock() *MemoryCallLock {
	return &MemoryCallLock{
		leases: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryCallLock) TryAcquire(_ context.Context, issueSID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiresAt, held := l.leases[issueSID]; held && now.Before(expiresAt) {
		return false, nil
	}
	l.leases[issueSID] = now.Add(ttl)
	return true, nil
}

func (l *MemoryCallLock) Release(_ context.Context, issueSID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.leases, issueSID)
	return nil
}
