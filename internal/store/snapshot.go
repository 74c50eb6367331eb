package store

import (
	"context"
	"time"
)

// snapshotTimeout bounds one snapshot write.
const snapshotTimeout = 10 * time.Second

// writeContext derives the context for a snapshot write. It keeps ctx's
// values but not its cancellation: a mutation applied in memory is written
// even when the caller has gone away.
func writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
}
