// Copyright (c) 2026 Palmares. All rights reserved.

// Command ingest drives the extraction pipeline from the shell. It shares
// the server's wiring but skips the HTTP surface, making it the right tool
// for long full-history runs and cron-driven refreshes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
