package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"phishguard/pkg/sentinel"
)

const otpKeyPrefix = "otp:email:"

// The Redis key outlives the code by this much so the service can observe an
// expired entry once and report Expired rather than NotRequested. Entries
// past the grace are reclaimed by Redis itself.
const expiredEntryGrace = time.Hour

// RedisLedger is a Redis-backed implementation of Ledger for deployments with
// more than one instance, where a process-local map would make OTP delivery
// depend on which instance the verify call lands on.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (l *RedisLedger) Put(ctx context.Context, email string, entry Entry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal otp entry: %w", err)
	}
	// SET overwrites atomically, matching the overwrite-on-reissue contract.
	return l.client.Set(ctx, otpKeyPrefix+email, payload, ttl+expiredEntryGrace).Err()
}

func (l *RedisLedger) Get(ctx context.Context, email string) (Entry, error) {
	raw, err := l.client.Get(ctx, otpKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get otp entry: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, fmt.Errorf("unmarshal otp entry: %w", err)
	}
	return entry, nil
}

func (l *RedisLedger) Delete(ctx context.Context, email string) error {
	return l.client.Del(ctx, otpKeyPrefix+email).Err()
}
