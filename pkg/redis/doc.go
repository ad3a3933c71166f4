// Package redis opens the go-redis client shared by the Redis catalog
// store and the Redis cache.
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//		redis.WithPoolSize(20),
//		redis.WithRetry(5, time.Second),
//	)
//
// Open retries the initial ping, waiting a little longer after each
// failure, and gives up with ErrConnectionFailed. Healthcheck and Shutdown
// plug into the serve command's health endpoint and shutdown sequence.
package redis
