// Package health provides HTTP handlers for liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"database": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
//
// Checks run in parallel under a shared timeout. Responses are plain text
// ("OK" / "Service Unavailable") unless the client asks for JSON with
// ?format=json or an Accept header, in which case a [Response] is returned
// with per-check details.
package health
