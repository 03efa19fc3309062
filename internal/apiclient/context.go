package apiclient

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID pins the X-Request-ID sent for calls made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
