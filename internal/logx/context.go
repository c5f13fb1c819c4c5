package logx

import (
	"context"
	"log/slog"
	"slices"
)

type contextKey string

const attrsKey contextKey = "logx_attrs"

// WithAttrs returns a context carrying the given attributes in addition to the
// ones already attached to ctx.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	merged := slices.Concat(Attrs(ctx), attrs)
	return context.WithValue(ctx, attrsKey, merged)
}

// Attrs returns the attributes attached to ctx.
func Attrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	attrs, _ := ctx.Value(attrsKey).([]slog.Attr)
	return attrs
}

// ContextHandler appends the attributes stored in the record context.
type ContextHandler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := Attrs(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

var _ slog.Handler = ContextHandler{}
