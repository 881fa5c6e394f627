package requestmeta

import "context"

// Meta carries per-request client details into audit entries.
type Meta struct {
	IPAddress string
	UserAgent string
}

type metaKey struct{}

func WithContext(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// FromContext returns the request metadata, or zero values outside an
// HTTP request (cron jobs, tests).
func FromContext(ctx context.Context) Meta {
	if meta, ok := ctx.Value(metaKey{}).(Meta); ok {
		return meta
	}
	return Meta{}
}
