package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// Identity is what a request carries about its caller. Both fields may be empty.
type Identity struct {
	AccessToken string
	AnonymousID string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity put there by the HTTP middleware,
// falling back to gRPC metadata.
func IdentityFromContext(ctx context.Context) Identity {
	if val, ok := ctx.Value(identityKey{}).(Identity); ok {
		return val
	}

	var id Identity
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return id
	}
	if val := md.Get("authorization"); len(val) > 0 {
		id.AccessToken = bearerToken(val[0])
	}
	if val := md.Get("x-anonymous-id"); len(val) > 0 {
		id.AnonymousID = val[0]
	}
	return id
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
