package cartstore

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	cartField      = "cart"
	initAttempts   = 30
	maxInitBackoff = 30 * time.Second
)

// RedisCartStore keeps each session's snapshot as JSON in a hash under
// "cart:<session>", expiring together with the session.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore accepts either a redis:// URL or a plain host[:port].
func NewRedisCartStore(addr string, ttl time.Duration) *RedisCartStore {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		if !strings.Contains(addr, ":") {
			addr += ":6379"
		}
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PoolSize:     10,
		}
	}
	return &RedisCartStore{client: redis.NewClient(opts), ttl: ttl}
}

// Initialize waits for redis to answer PING, backing off between attempts.
func (r *RedisCartStore) Initialize(ctx context.Context) error {
	backoff := time.Second
	for i := 1; i <= initAttempts; i++ {
		if r.Ping(ctx) {
			log.WithField("attempt", i).Info("✅ Redis cart store ready")
			return nil
		}
		log.WithFields(log.Fields{"attempt": i, "wait": backoff}).Warn("⏳ Redis not reachable yet")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxInitBackoff {
			backoff = maxInitBackoff
		}
	}
	return errors.Errorf("redis not reachable after %d attempts", initAttempts)
}

func (r *RedisCartStore) Ping(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err() == nil
}

func (r *RedisCartStore) Load(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	val, err := r.client.HGet(ctx, key(sessionID), cartField).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis HGET")
	}
	var items []cart.LineItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, errors.Wrap(err, "decode cart snapshot")
	}
	return items, nil
}

func (r *RedisCartStore) Save(ctx context.Context, sessionID string, items []cart.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart snapshot")
	}
	k := key(sessionID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, k, cartField, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, k, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "redis save cart")
	}
	return nil
}

func (r *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	return errors.Wrap(r.client.Del(ctx, key(sessionID)).Err(), "redis DEL")
}

func (r *RedisCartStore) Close() error {
	return r.client.Close()
}

func key(sessionID string) string {
	return "cart:" + sessionID
}
