package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

const scanBatchSize = 100

// RedisClientOptions is the struct for the baseOptions of the library client and
// any additional one for the Redis struct
type RedisClientOptions struct {
	BaseOptions *redis.Options
	KeyPrefix   string
	Name        string
	PoolSize    int
}

// Redis represents a redis client with key prefix for all the implemented operations
type Redis struct {
	Client    redis.Cmdable
	KeyPrefix string
	Name      string
}

// NewRedisClient returns a client for a non-cluster instance
func NewRedisClient(ctx context.Context, options *RedisClientOptions) (*Redis, error) {
	return connectToRedis(ctx, redis.NewClient(options.BaseOptions), options)
}

// NewRedisClusterClient returns a client for a cluster instance
func NewRedisClusterClient(ctx context.Context, options *RedisClientOptions) (*Redis, error) {
	return connectToRedis(ctx, redis.NewClusterClient(&redis.ClusterOptions{
		PoolSize: options.PoolSize,
		Addrs:    []string{options.BaseOptions.Addr},
		Password: options.BaseOptions.Password,
	}), options)
}

// connectToRedis pings the given client to confirm the connection is successful
func connectToRedis(ctx context.Context, client redis.UniversalClient, options *RedisClientOptions) (*Redis, error) {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, err
	}

	return &Redis{
		Client:    client,
		KeyPrefix: options.KeyPrefix,
		Name:      options.Name,
	}, nil
}

// SetJSON sets the value given on the cache as JSON
func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}, TTLSeconds uint) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.KeyPrefix+key, jsonValue, time.Second*time.Duration(TTLSeconds)).Err()
}

// GetJSON unmarshalls the JSON value stored on key into v, returns
// ErrKeyDoesNotExist on a cache miss
func (r *Redis) GetJSON(ctx context.Context, key string, v any) error {
	data, err := r.Client.Get(ctx, r.KeyPrefix+key).Result()
	return UnmarshallJSONResult(data, err, v)
}

// GetInt returns the integer stored on key, zero when the key does not exist
func (r *Redis) GetInt(ctx context.Context, key string) (int64, error) {
	value, err := r.Client.Get(ctx, r.KeyPrefix+key).Int64()
	if err == redis.Nil {
		return 0, nil
	}

	return value, err
}

// Incr increments the integer stored on key, returning its new value
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return r.Client.Incr(ctx, r.KeyPrefix+key).Result()
}

// DeleteByPrefix removes every key starting with prefix, returning how many
// keys were deleted. On a cluster every master node is scanned.
func (r *Redis) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	pattern := r.KeyPrefix + prefix + "*"

	switch client := r.Client.(type) {
	case *redis.ClusterClient:
		var deleted int64
		err := client.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			n, err := deleteByPattern(ctx, node, pattern)
			atomic.AddInt64(&deleted, n)
			return err
		})
		return deleted, err
	default:
		return deleteByPattern(ctx, r.Client, pattern)
	}
}

// Close closes a redis client depending on whether is part of a cluster or not
func (r *Redis) Close() error {
	switch client := r.Client.(type) {
	case *redis.Client:
		return client.Close()
	case *redis.ClusterClient:
		return client.Close()
	}
	return errors.New("invalid redis client type")
}

// Addrs returns the address used for the connection of the client
func (r *Redis) Addrs() []string {
	switch client := r.Client.(type) {
	case *redis.Client:
		return []string{client.Options().Addr}
	case *redis.ClusterClient:
		return client.Options().Addrs
	}
	return []string{}
}

// UnmarshallJSONResult asserts the result and umarshalls a value expected to be JSON
func UnmarshallJSONResult(data any, err error, v any) error {
	err = assertCacheResponse(data, err)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data.(string)), v)
}

func deleteByPattern(ctx context.Context, client redis.Cmdable, pattern string) (int64, error) {
	var deleted int64
	var cursor uint64

	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return deleted, err
		}

		if len(keys) > 0 {
			n, err := client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}

		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

// assertCacheResponse checks whether the result returns a valid response, guaranteed
// that any valid response will come as a string
func assertCacheResponse(val any, err error) error {
	switch {
	case err == redis.Nil || val == nil:
		return ErrKeyDoesNotExist
	case err != nil:
		return err
	case val == "":
		return ErrEmptyValue
	}

	return nil
}
