// Package redis opens go-redis clients from environment configuration.
//
//	var cfg redis.Config // REDIS_URL, REDIS_POOL_SIZE, ...
//	_ = env.Parse(&cfg)
//
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
// Open verifies the connection with PING and retries transient failures.
// Healthcheck and Shutdown return functions for readiness checks and
// shutdown hooks.
package redis
