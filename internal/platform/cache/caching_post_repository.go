// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// CachingPostRepository decorates a PostRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads are cache-aside; every write
// invalidates the affected entries.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// cachedPage is the serialized shape of one Find result.
type cachedPage struct {
	Items []entity.Post
	Total int64
}

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "posts".
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Find retrieves one listing page, checking cache first then falling back to
// the database.
func (c *CachingPostRepository) Find(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Find(ctx, query, page, limit)
	}

	key := c.listKey(query, page, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out cachedPage
		if err := json.Unmarshal(b, &out); err == nil {
			return out.Items, out.Total, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	items, total, err := c.inner.Find(ctx, query, page, limit)
	if err != nil {
		return nil, 0, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedPage{Items: items, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return items, total, nil
}

// FindByID retrieves a single post, checking cache first. Lookup misses
// (ErrPostNotFound) are never cached.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Post
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	post, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(post); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return post, nil
}

// Create inserts a post and invalidates the listing cache.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	c.invalidateLists(ctx)
	return nil
}

// CreateBatch inserts a batch and invalidates the listing cache.
func (c *CachingPostRepository) CreateBatch(ctx context.Context, posts []entity.Post) ([]entity.Post, error) {
	created, err := c.inner.CreateBatch(ctx, posts)
	if err != nil {
		return nil, err
	}
	c.invalidateLists(ctx)
	return created, nil
}

// Update applies a patch and invalidates both the listing cache and the
// post's own entry.
func (c *CachingPostRepository) Update(ctx context.Context, id uint, patch usecase.PostPatch) (*entity.Post, error) {
	updated, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidateLists(ctx)
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.idKey(id)).Err()
	}
	return updated, nil
}

// Delete removes a post and invalidates both the listing cache and the
// post's own entry.
func (c *CachingPostRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidateLists(ctx)
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.idKey(id)).Err()
	}
	return nil
}

// invalidateLists drops every cached listing page. Best effort: a failed
// invalidation only shortens cache accuracy until the TTL expires.
func (c *CachingPostRepository) invalidateLists(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":list:*")
}

// listKey generates a cache key for a specific listing query.
func (c *CachingPostRepository) listKey(query string, page, limit int) string {
	return fmt.Sprintf("%s:list:%s:%d:%d", c.namespace, safe(query), page, limit)
}

// idKey generates a cache key for a single post.
func (c *CachingPostRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPostRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
