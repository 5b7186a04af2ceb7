// Package ryob is a small server-rendered discussion forum: people register,
// log in, open topics and reply with posts.
//
// This package is the HTTP toolkit the forum is built on. Domain logic lives
// in package forum, storage in repository/postgres and repository/sqlite,
// pages in views and routes in handlers. cmd/ryob wires them together.
//
// # Quick Start
//
//	app := ryob.New(
//	    ryob.WithCustomLogger(log),
//	    ryob.WithSession(session.NewCookieStore(cookies, session.WithCookieName("ryob_session"))),
//	    ryob.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.LoadUser(identity),
//	    ),
//	    ryob.WithHandlers(handlers.NewUsers(identity, pages), handlers.NewTopics(content, pages, 20)),
//	)
//
//	if err := app.Run(":8080", ryob.Logger(log)); err != nil {
//	    log.Error("server failed", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] to declare routes and return errors instead of
// writing error responses themselves:
//
//	func (h *Topics) Routes(r ryob.Router) {
//	    r.GET("/topics/{id}", h.show)
//	    r.POST("/topics", h.create, middlewares.RequireUser("/users/login"))
//	}
//
// # Sessions
//
// The session is a signed cookie holding a small JSON map. It is loaded on
// first use and written back before the response only when it changed.
// A cookie with a bad signature is treated as no session at all.
//
// # Errors
//
// Errors returned by handlers reach the [ErrorHandler]. Return an [HTTPError]
// to pick the status and the message shown to the user:
//
//	return ryob.ErrNotFound("No such topic")
package ryob
