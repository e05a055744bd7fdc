package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	pageKeyPrefix     = "page:"
	revalidateChannel = "revalidate"
)

// Revalidator emits cache-invalidation signals for rendered pages: it drops
// the cached page key and publishes the path on the revalidate channel so the
// rendering layer can rebuild the route.
//
// Redis failures here are logged and swallowed; a missed invalidation is not
// worth failing the mutation that already committed.
type Revalidator struct {
	redis *RedisClient
}

func NewRevalidator(redis *RedisClient) *Revalidator {
	return &Revalidator{redis: redis}
}

func (r *Revalidator) Revalidate(ctx context.Context, path string) {
	if r.redis == nil || r.redis.Client == nil || path == "" {
		return
	}

	signalCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.redis.Client.Del(signalCtx, pageKeyPrefix+path).Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to drop cached page")
	}

	if err := r.redis.Client.Publish(signalCtx, revalidateChannel, path).Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to publish revalidate signal")
	}
}
