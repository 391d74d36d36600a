package cache

import (
	"context"
	"log/slog"
)

// SafeDelete deletes cache keys, logging instead of surfacing the error so an
// unavailable cache never fails the write that triggered the invalidation.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}
