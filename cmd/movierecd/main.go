package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"movierec/internal/serverrun"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(envLookup)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := serverrun.Run(ctx, cfg, serverOptions(envLookup)); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("movierecd: %v", err)
	}
}
