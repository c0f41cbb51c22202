// Package redis opens and health checks the Redis client shared by the
// session store and the cache.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.RedisStore(client, "goteo:session:")
//	ready := health.Readiness(log, redis.Healthcheck(client))
//
// Connect accepts redis:// and rediss:// URLs and retries the initial ping
// with exponential backoff starting at RetryInterval. Errors wrap
// ErrEmptyConnectionURL, ErrFailedToParseRedisConnString or ErrRedisNotReady.
package redis
