package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spendlog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.ErrorContext(ctx, "spendlog failed", "error", err)
		stop()
		os.Exit(1)
	}
}
