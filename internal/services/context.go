package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	titleKey     contextKey = "title"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTitle annotates context with the media title currently being processed.
func WithTitle(ctx context.Context, title string) context.Context {
	if title == "" {
		return ctx
	}
	return context.WithValue(ctx, titleKey, title)
}

// TitleFromContext returns the media title if present.
func TitleFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(titleKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
