package main

import (
	"context"

	"lodge/config"
	"lodge/di"
	"lodge/internal/metrics"
	"lodge/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	metrics.Register()

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Sweeper.Run(ctx)

	app.HTTP.Serve()
}
