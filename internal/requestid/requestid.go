// filepath: internal/requestid/requestid.go
// Package requestid generates and propagates per-request identifiers.
package requestid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type contextKey struct{}

// New returns a fresh, sortable request identifier.
func New() string {
	return ulid.Make().String()
}

// NewContext returns a copy of ctx carrying the request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the request ID from ctx, or "" if none is set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
