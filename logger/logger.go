// Package logger carries a zap logger through a context.Context, so
// library code logs through whatever logger its caller configured.
package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying log.
func NewContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// L returns the logger stored in ctx, falling back to zap.L().
func L(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(contextKey{}).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.L()
}

// Named is shorthand for L(ctx).Named(name).
func Named(ctx context.Context, name string) *zap.Logger {
	return L(ctx).Named(name)
}
