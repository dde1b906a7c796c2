// Package cache keeps the reads of a posts.Store in redis
package cache

import (
	"context"
	"fmt"

	"github.com/chimera-ai/functions/posts"
	sharedcache "github.com/chimera-ai/functions/shared/cache"
	"github.com/chimera-ai/functions/shared/logger"
	"github.com/chimera-ai/functions/shared/utils"
	"github.com/sirupsen/logrus"
)

const (
	// KeyPrefix is the prefix of every cached read
	KeyPrefix = "posts:"
	// GenerationKey holds the generation of the cached reads. It sits outside
	// KeyPrefix so that deleting the reads keeps it.
	GenerationKey = "posts-generation"
)

// Store is a read-through posts.Store, reads are served from the first cache
// client holding the key and written to all of them on a miss. Cache failures
// are logged and never returned.
//
// Read keys carry the generation of their client, Invalidate moves it forward
// so a read that started before an invalidation writes its result under a
// key nobody reads anymore.
type Store struct {
	store   posts.Store
	clients []*sharedcache.Redis
	ttl     uint
}

// NewStore returns store cached on clients for ttlSeconds
func NewStore(store posts.Store, clients []*sharedcache.Redis, ttlSeconds uint) *Store {
	return &Store{
		store:   store,
		clients: clients,
		ttl:     ttlSeconds,
	}
}

// GetPost returns the cached post with the given id
func (s *Store) GetPost(ctx context.Context, id int64) ([]posts.Post, error) {
	return readThrough(ctx, s, fmt.Sprintf("post:%d", id), func() ([]posts.Post, error) {
		return s.store.GetPost(ctx, id)
	})
}

// ListPosts returns the cached page of posts
func (s *Store) ListPosts(ctx context.Context, limit, offset int) ([]posts.Post, error) {
	return readThrough(ctx, s, fmt.Sprintf("list:%d:%d", limit, offset), func() ([]posts.Post, error) {
		return s.store.ListPosts(ctx, limit, offset)
	})
}

// ListCategories returns the cached category counts
func (s *Store) ListCategories(ctx context.Context) ([]posts.CategoryCount, error) {
	return readThrough(ctx, s, "categories", func() ([]posts.CategoryCount, error) {
		return s.store.ListCategories(ctx)
	})
}

// ListRecent returns the cached recent posts
func (s *Store) ListRecent(ctx context.Context, limit int) ([]posts.PostSummary, error) {
	return readThrough(ctx, s, fmt.Sprintf("recent:%d", limit), func() ([]posts.PostSummary, error) {
		return s.store.ListRecent(ctx, limit)
	})
}

// Search returns the cached search results of query
func (s *Store) Search(ctx context.Context, query string, limit int) ([]posts.Post, error) {
	return readThrough(ctx, s, fmt.Sprintf("search:%d:%s", limit, query), func() ([]posts.Post, error) {
		return s.store.Search(ctx, query, limit)
	})
}

// GetStats returns the cached aggregates of the posts table
func (s *Store) GetStats(ctx context.Context) (*posts.Stats, error) {
	return readThrough(ctx, s, "stats", func() (*posts.Stats, error) {
		return s.store.GetStats(ctx)
	})
}

// Initialize initializes the wrapped store and invalidates every cached read
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.store.Initialize(ctx); err != nil {
		return err
	}

	deleted, err := utils.MapSliceConcurrently(s.clients, func(client *sharedcache.Redis) (int64, error) {
		return Invalidate(ctx, client)
	})
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"prefix": KeyPrefix,
			"error":  err.Error(),
		}).Warn("cache: failure invalidating posts keys")
		return nil
	}

	logger.Log.WithFields(logrus.Fields{
		"prefix":  KeyPrefix,
		"deleted": utils.Sum(deleted),
	}).Debug("cache: posts keys invalidated")

	return nil
}

// Invalidate moves the generation of client forward and deletes the cached
// reads, returning how many were deleted
func Invalidate(ctx context.Context, client *sharedcache.Redis) (int64, error) {
	if _, err := client.Incr(ctx, GenerationKey); err != nil {
		return 0, err
	}

	return client.DeleteByPrefix(ctx, KeyPrefix)
}

// cacheKey is a read key on one client
type cacheKey struct {
	client *sharedcache.Redis
	key    string
}

// keys returns the key of a read on every client whose generation could be read
func (s *Store) keys(ctx context.Context, key string) []cacheKey {
	keys := make([]cacheKey, 0, len(s.clients))

	for _, client := range s.clients {
		generation, err := client.GetInt(ctx, GenerationKey)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"cache": client.Name,
				"error": err.Error(),
			}).Warn("cache: failure reading generation")
			continue
		}

		keys = append(keys, cacheKey{
			client: client,
			key:    fmt.Sprintf("%s%d:%s", KeyPrefix, generation, key),
		})
	}

	return keys
}

func readThrough[T any](ctx context.Context, s *Store, key string, load func() (T, error)) (T, error) {
	keys := s.keys(ctx, key)

	for _, k := range keys {
		var cached T
		err := k.client.GetJSON(ctx, k.key, &cached)
		if err == nil {
			return cached, nil
		}

		if err != sharedcache.ErrKeyDoesNotExist {
			logger.Log.WithFields(logrus.Fields{
				"key":   k.key,
				"cache": k.client.Name,
				"error": err.Error(),
			}).Warn("cache: failure reading key")
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	// Keys were built before load, a concurrent invalidation leaves these writes unread
	err = utils.RunFnOnSliceSingleFailure(keys, func(k cacheKey) error {
		return k.client.SetJSON(ctx, k.key, value, s.ttl)
	})
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("cache: failure writing key")
	}

	return value, nil
}
