package services

import "context"

type contextKey int

const (
	stageKey contextKey = iota
	queryKey
	requestIDKey
)

// WithStage records the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return withString(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, stageKey)
}

// WithQuery records the title the user asked about.
func WithQuery(ctx context.Context, title string) context.Context {
	return withString(ctx, queryKey, title)
}

// QueryFromContext returns the query title if present.
func QueryFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, queryKey)
}

// WithRequestID records a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}

// Empty values are not stored so an outer value stays visible.
func withString(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}
