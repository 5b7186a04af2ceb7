package internal

// Handler contributes routes to the app. Feature handlers hold their
// dependencies and register methods as HandlerFuncs:
//
//	func (h *Topics) Routes(r ryob.Router) {
//	    r.GET("/topics/{id}", h.showTopic)
//	    r.POST("/topics", h.createTopic, middlewares.RequireUser("/users/login"))
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one request. A returned error is rendered by the
// app's ErrorHandler unless the response has already started.
type HandlerFunc func(c Context) error

// Middleware decorates a HandlerFunc. It may short-circuit by not calling
// next, and it sees the error next returns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns a handler error into a response.
type ErrorHandler func(c Context, err error) error
