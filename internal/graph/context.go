package graph

import (
	"context"

	"github.com/workpulse/attendance-api/internal/access"
	"github.com/workpulse/attendance-api/internal/loader"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	loadersKey  contextKey = "loaders"
)

// WithIdentity attaches the authenticated caller to the request context.
func WithIdentity(ctx context.Context, identity *access.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the caller identity, or nil for anonymous requests.
func IdentityFrom(ctx context.Context) *access.Identity {
	identity, _ := ctx.Value(identityKey).(*access.Identity)
	return identity
}

// WithLoaders attaches the per-request batch loaders to the context.
func WithLoaders(ctx context.Context, l *loader.Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// LoadersFrom returns the request-scoped loaders, or nil when none were set.
func LoadersFrom(ctx context.Context) *loader.Loaders {
	l, _ := ctx.Value(loadersKey).(*loader.Loaders)
	return l
}
