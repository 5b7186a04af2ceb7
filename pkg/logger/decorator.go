package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor derives one attribute from a log call's context, such as
// the request id or the signed-in user id. ok=false adds nothing.
type ContextExtractor func(ctx context.Context) (attr slog.Attr, ok bool)

// LogHandlerDecorator runs its extractors on every record, so values bound
// to the request context show up without passing them to each log call.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator wraps next. Nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	d := &LogHandlerDecorator{next: next}
	for _, ex := range extractors {
		if ex != nil {
			d.extractors = append(d.extractors, ex)
		}
	}
	return d
}

func (d *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return d.next.Enabled(ctx, level)
}

func (d *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range d.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return d.next.Handle(ctx, rec)
}

func (d *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandlerDecorator{next: d.next.WithAttrs(attrs), extractors: d.extractors}
}

func (d *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return &LogHandlerDecorator{next: d.next.WithGroup(name), extractors: d.extractors}
}

// fanout sends each record to every handler that accepts its level.
// Used to mirror stdout logs into Sentry.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, rec slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// NewNope returns a logger that drops everything; the default for tests
// and for apps built without a logger.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
