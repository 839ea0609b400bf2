package pending

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces pending-registration hashes in Redis.
const keyPrefix = "pending:"

// ttlGrace keeps a record readable past its validity window, so verification
// reports "expired" rather than "not found" until Redis drops the key.
const ttlGrace = 10 * time.Minute

// RedisStore keeps pending registrations in one Redis hash per email, which
// makes the registration flow stateless across server replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, reg Registration) error {
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now()
	}

	key := keyPrefix + reg.Email
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", reg.Code,
		"profile", reg.Profile,
		"attempts", reg.Attempts,
		"created_at", reg.CreatedAt.UnixMilli(),
	)
	pipe.Expire(ctx, key, ValidityWindow+ttlGrace)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, email string) (*Registration, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+email).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	attempts, _ := strconv.Atoi(fields["attempts"])
	createdMs, _ := strconv.ParseInt(fields["created_at"], 10, 64)

	return &Registration{
		Email:     email,
		Code:      fields["code"],
		Profile:   []byte(fields["profile"]),
		Attempts:  attempts,
		CreatedAt: time.UnixMilli(createdMs),
	}, nil
}

func (s *RedisStore) DecrementAttempts(ctx context.Context, email string) (int, error) {
	left, err := s.client.HIncrBy(ctx, keyPrefix+email, "attempts", -1).Result()
	return int(left), err
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, keyPrefix+email).Err()
}
