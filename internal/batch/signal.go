package batch

import (
	"context"
	"os/signal"

	"golang.org/x/sys/unix"
)

// WithSignalCancel returns a context canceled on SIGINT or SIGTERM, so a
// batch run interrupted at the terminal drains its in-flight workers and
// returns the partial result instead of dying mid-write.
func WithSignalCancel(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, unix.SIGINT, unix.SIGTERM)
}
