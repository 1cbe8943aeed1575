package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/bootstrap"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger("request-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	bootstrap.Run(ctx, cfg, log)
}
