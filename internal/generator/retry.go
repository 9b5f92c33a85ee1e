package generator

import (
	"context"
	"errors"
	"log/slog"
)

type retryGenerator struct {
	inner TextGenerator
}

// WithRetry wraps a generator with a single retry on transient network
// failure. Every other failure kind passes through untouched: an auth
// or upstream rejection will fail the same way again, and an automatic
// re-generation would silently produce a different artifact.
func WithRetry(inner TextGenerator) TextGenerator {
	return &retryGenerator{inner: inner}
}

func (g *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := g.inner.Generate(ctx, prompt)
	var netErr *NetworkError
	if err == nil || !errors.As(err, &netErr) || ctx.Err() != nil {
		return text, err
	}
	slog.Warn("generation attempt failed, retrying once", "error", err)
	return g.inner.Generate(ctx, prompt)
}
