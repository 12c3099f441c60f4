package mocks

import (
	"context"
	"gooman/infras/otel"
)

type noopOtel struct{}

// NewScope implements otel.Otel.
func (o *noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// Shutdown implements otel.Otel.
func (o *noopOtel) Shutdown(_ context.Context) error {
	return nil
}

// NewOtel returns a tracer whose scopes record nothing.
func NewOtel() otel.Otel {
	return &noopOtel{}
}
