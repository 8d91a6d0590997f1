// Command csstheme resolves CSS custom properties against a theme
// configuration, cloning rules per theme.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/csstheme/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
