package planstore

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisKV stores keys in redis, optionally namespaced with a prefix.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisKV(rdb *redis.Client, prefix string) *RedisKV {
	return &RedisKV{
		rdb:    rdb,
		prefix: prefix,
	}
}

// DevicePrefix is the key namespace of a single device.
func DevicePrefix(deviceID string) string {
	return "device::" + deviceID + "::"
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := kv.rdb.Get(ctx, kv.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	return kv.rdb.Set(ctx, kv.prefix+key, value, 0).Err()
}

func (kv *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = kv.prefix + k
	}
	return kv.rdb.Del(ctx, prefixed...).Err()
}
