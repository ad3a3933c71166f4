// Package health serves liveness and readiness probes for the lingua
// server.
//
// Liveness only proves the process answers. Readiness runs the registered
// checks concurrently, typically the catalog store, the Postgres pool and
// the Redis client:
//
//	checks := health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithTimeout(2*time.Second)))
//
// Both handlers answer plain "OK" by default and a Response document when
// the client sends Accept: application/json or ?format=json. A failed
// readiness run answers 503.
//
// Run executes the same checks outside HTTP and returns the joined
// failures, each matching ErrCheckFailed or ErrCheckTimeout.
package health
