package concurrent

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
)

// OnSignal calls the provided function when one of the expected signals is received and returns.
// If the context is canceled, OnSignal returns without calling the function.
//
// For graceful termination, create the main context cancelable
// and run OnSignal with that context and its cancel function.
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go OnSignal(ctx, cancel, syscall.SIGINT, syscall.SIGTERM)
func OnSignal(ctx context.Context, f func(), sigs ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	defer signal.Stop(ch)

	select {
	case sig := <-ch:
		log.Warn().Msgf("Caught signal %s; stopping...", sig)
		f()
	case <-ctx.Done():
	}
}
