package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// WithInterrupt returns a context that is cancelled on SIGINT or SIGTERM.
// Files already written are left where they are.
func WithInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sig)

		select {
		case <-sig:
			fmt.Println("\nInterrupt received. Stopping after the current request...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
