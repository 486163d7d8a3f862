package main

import (
	"context"
	"log"
	"os"

	"github.com/vadim/order-metrics/internal/app"
	"github.com/vadim/order-metrics/internal/config"
)

func main() {
	cfg := config.MustLoad()

	ctx := context.Background()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	// Blocks until SIGINT/SIGTERM
	if err := application.Run(ctx); err != nil {
		log.Printf("application error: %v", err)
		os.Exit(1)
	}
}
