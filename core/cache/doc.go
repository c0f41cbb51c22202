// Package cache provides the model caches the application can flush on demand.
//
// Two implementations share the Flusher interface:
//
//   - LRUCache: a generic, thread-safe in-process cache with least recently
//     used eviction, built on github.com/hashicorp/golang-lru/v2.
//   - RedisCache: JSON values under a key prefix in Redis, shared across
//     processes. FlushAll removes only keys under its prefix.
//
// # Usage
//
//	projects := cache.NewLRUCache[string, *Project](1000)
//	projects.Put("project:goteo", p)
//	if p, ok := projects.Get("project:goteo"); ok { ... }
//
//	shared := cache.NewRedisCache(rdb, "goteo:cache:")
//	_ = shared.Set(ctx, "stats", stats, time.Hour)
//
// # Flushing
//
// Group caches into a Group to flush them all at once, as the "cleancache"
// escape hatch does:
//
//	caches := cache.Group{projects, shared}
//	if err := caches.FlushAll(ctx); err != nil { ... }
//
// Errors from individual caches are joined; every cache is attempted.
package cache
