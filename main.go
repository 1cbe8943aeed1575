package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"

	adminboot "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/bootstrap"
	donorboot "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/bootstrap"
	requestboot "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/bootstrap"
)

func main() {
	svc := flag.String("service", "request", "request|donor|admin|all")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "request":
		log := logger.NewLogger("request-service")
		requestboot.Run(ctx, cfg, log)

	case "donor":
		log := logger.NewLogger("donor-service")
		donorboot.Run(ctx, cfg, log)

	case "admin":
		log := logger.NewLogger("admin-service")
		adminboot.Run(ctx, cfg, log)

	case "all":
		requestLog := logger.NewLogger("request-service")
		donorLog := logger.NewLogger("donor-service")
		adminLog := logger.NewLogger("admin-service")

		go requestboot.Run(ctx, cfg, requestLog)
		go donorboot.Run(ctx, cfg, donorLog)
		go adminboot.Run(ctx, cfg, adminLog)

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}

	<-ctx.Done()
}
