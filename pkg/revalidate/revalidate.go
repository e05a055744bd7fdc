package revalidate

import "context"

// Signaler tells the rendering layer that a route's cached page is stale.
// Mutating operations call Revalidate with the route path on success.
type Signaler interface {
	Revalidate(ctx context.Context, path string)
}

// Noop discards revalidation signals. Used in tests and when the cache
// layer is unavailable.
type Noop struct{}

func (Noop) Revalidate(ctx context.Context, path string) {}
