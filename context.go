package passy

import "context"

type requestIDContextKey struct{}
type clientIDContextKey struct{}

// WithRequestID attaches a request identifier to ctx. The Engine copies it
// into audit events.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// WithClientID attaches the caller identity (bridge token subject or remote
// address) to ctx for audit events.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDContextKey{}, id)
}

// RequestIDFromContext returns the identifier set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func clientIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(clientIDContextKey{}).(string)
	return id
}
