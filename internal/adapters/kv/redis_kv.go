package kv

import (
	"context"
	"errors"
	"fmt"
	"map-route-service/internal/platform/obs"
	"map-route-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const maxUpdateRetries = 10

// RedisKV stores every key in one Redis hash.
type RedisKV struct {
	client *redis.Client
	hash   string
	quota  int64
}

func NewRedisKV(client *redis.Client, hash string, quota int64) *RedisKV {
	if hash == "" {
		hash = "map-route-service"
	}
	return &RedisKV{client: client, hash: hash, quota: quota}
}

func (r *RedisKV) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "kv.redis.Get")(&err)

	v, err := r.client.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis kv: get %q: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.Update(ctx, key, func(string, bool) (string, error) { return value, nil })
}

// Update is an optimistic WATCH/MULTI transaction on the hash, retried
// when another writer changes it first.
func (r *RedisKV) Update(ctx context.Context, key string, fn ports.UpdateFunc) (err error) {
	defer obs.Time(ctx, "kv.redis.Update")(&err)

	txf := func(tx *redis.Tx) error {
		values, err := tx.HGetAll(ctx, r.hash).Result()
		if err != nil {
			return fmt.Errorf("read hash: %w", err)
		}

		current, ok := values[key]
		next, err := fn(current, ok)
		if err != nil {
			return err
		}

		values[key] = next
		if err := checkQuota(r.quota, values); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.hash, key, next)
			return nil
		})
		return err
	}

	for range maxUpdateRetries {
		err := r.client.Watch(ctx, txf, r.hash)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis kv: update %q: %w", key, err)
		}
		return nil
	}

	return fmt.Errorf("redis kv: update %q: gave up after %d conflicting writes", key, maxUpdateRetries)
}
