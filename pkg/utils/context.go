package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)

// NewRequestID returns a fresh request ID.
func NewRequestID() string {
	return uuid.New().String()
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestIDFromContext returns the request ID set by the RequestID middleware.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	idVal := ctx.Value(RequestIDKey)
	if idVal == nil {
		return "", false
	}

	id, ok := idVal.(string)
	return id, ok && id != ""
}
