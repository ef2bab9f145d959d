package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

func NewRequestID() string {
	return uuid.New().String()
}

// RequestIDOrNew keeps a caller-supplied ID when it is a UUID, so a client
// stepping through one run can correlate its requests, and mints a new one
// otherwise.
func RequestIDOrNew(incoming string) string {
	if _, err := uuid.Parse(incoming); err == nil && incoming != "" {
		return incoming
	}
	return NewRequestID()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
