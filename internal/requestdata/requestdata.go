package requestdata

import (
	"context"
)

// RequestData is the per-request identity installed by the auth middleware.
// It replaces any notion of a process-wide current user: it is created when a
// request is authenticated and dies with the request context.
type RequestData struct {
	UserID   uint
	Username string
	Role     string
}

type contextKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(contextKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}
