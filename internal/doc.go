// Package internal implements the HTTP core of ryob: the App, the request
// Context, routing on top of chi, sessions and the server lifecycle.
//
// Import "github.com/dmitrymomot/ryob" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: routing, middleware, sessions and graceful shutdown
//   - Context: request/response access, binding, rendering, session and logging helpers
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes
//   - HandlerFunc: a route handler that returns an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers
//
// # Context as context.Context
//
// Context embeds context.Context and delegates to the request context, so it
// can be passed straight to services and repositories:
//
//	func (h *Topics) show(c ryob.Context) error {
//	    id, err := ryob.ParamID[forum.Topic](c, "id")
//	    if err != nil {
//	        return ryob.ErrNotFound("")
//	    }
//	    topic, err := h.content.FindTopic(c, id)
//	    ...
//	}
//
// # Request State
//
// Every middleware layer builds its own Context, but all of them share one
// ResponseWriter and one session through a value stored in the request
// context. A session is loaded on the first call to Session and saved by an
// OnBeforeWrite hook when it changed, so handlers never write session cookies
// themselves.
//
// # Binding
//
// Bind and BindQuery decode form or query values into a struct (form/query
// tags), apply sanitize tags, and validate with validate tags plus an
// optional Validate() method. Validation failures come back as
// ValidationErrors; decoding failures come back as errors:
//
//	var in LoginForm
//	verrs, err := c.Bind(&in)
//	if err != nil {
//	    return ryob.ErrBadRequest("", ryob.WithError(err))
//	}
//	if !verrs.IsEmpty() {
//	    return c.Render(http.StatusBadRequest, views.Login(in.Name, verrs.Messages()))
//	}
//
// # Server Runtime
//
// Run serves until SIGINT or SIGTERM, then stops accepting connections,
// drains in-flight requests and runs shutdown hooks in order:
//
//	err := app.Run(":8080",
//	    ryob.Logger(log),
//	    ryob.StartupHook(migrate),
//	    ryob.ShutdownHook(db.Shutdown(pool)),
//	)
package internal
