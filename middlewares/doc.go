// Package middlewares provides the HTTP middleware ryob runs on every request.
//
// # Request ID
//
// RequestID reuses an upstream X-Request-ID or generates a ULID. Pair it with
// RequestIDExtractor so every log entry carries request_id:
//
//	app := ryob.New(
//	    ryob.WithLogger("ryob", middlewares.RequestIDExtractor(), middlewares.UserIDExtractor()),
//	    ryob.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover converts panics into *PanicError and Timeout bounds the request
// context, returning *TimeoutError when the deadline passes before anything
// was written. Both errors reach the app's ErrorHandler; ErrorStatus maps
// them (and forum errors) to status codes.
//
// # Logging and Metrics
//
// Logging writes one access log entry per request. Metrics feeds
// ryob_http_requests_total and ryob_http_request_duration_seconds, labelled by
// route pattern.
//
// # Users
//
// LoadUser resolves the session's user id through forum.ResolveCurrentUser.
// Handlers read it with CurrentUser; RequireUser guards routes that need a
// login:
//
//	r.POST("/topics", h.create, middlewares.RequireUser("/users/login"))
package middlewares
