// ============================================================================
// BOOTSTRAP (Compose Root)
// ============================================================================
//
// 📦 НАЗНАЧЕНИЕ:
// Точка сборки Admin Service: управление пользователями, обзор системы,
// запасы крови и аппараты ИВЛ госпиталей.
//
// Admin Service не слушает RabbitMQ — он работает напрямую с PostgreSQL:
// все нужные ему данные уже записаны request/donor сервисами.
//
// ============================================================================

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/adapters/in/transport"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/adapters/out/repo"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/usecase"
	reqrepo "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/adapter/out/repo"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/auth"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// Run запускает Admin Service со всеми его компонентами
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "admin_service_starting", Message: "initializing admin service"})

	// ========================================================================
	// СЛОЙ 1: ИНФРАСТРУКТУРА
	// ========================================================================

	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	// Миграции обычно уже применены request-сервисом, поэтому сбой здесь
	// не фатален
	if err := db_conn.Migrate(ctx, dbPool, log); err != nil {
		log.Error(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// ========================================================================
	// СЛОЙ 2: REPOSITORIES
	// ========================================================================

	userRepo := repo.NewUserPgRepository(dbPool, log)
	reportRepo := repo.NewReportPgRepository(dbPool, log)
	metricsRepo := repo.NewMetricsPgRepository(dbPool, log)
	stockAlerts := repo.NewStockAlertPgNotifier(dbPool, log)
	requestRepo := reqrepo.NewRequestPgRepository(dbPool, log)

	// ========================================================================
	// СЛОЙ 3: USE CASES
	// ========================================================================

	createUserUC := usecase.NewCreateUserService(userRepo, log)
	listUsersUC := usecase.NewListUsersService(userRepo, log)
	overviewUC := usecase.NewGetOverviewService(metricsRepo, log)
	pendingRequestsUC := usecase.NewGetPendingRequestsService(requestRepo, reportRepo, log)
	getStockUC := usecase.NewGetBloodStockService(reportRepo, log)
	updateStockUC := usecase.NewUpdateBloodStockService(reportRepo, stockAlerts, log)
	listVentilatorsUC := usecase.NewListVentilatorsService(reportRepo, log)
	updateVentUC := usecase.NewUpdateVentilatorService(reportRepo, log)

	// ========================================================================
	// СЛОЙ 4: HTTP СЕРВЕР
	// ========================================================================

	httpHandler := transport.NewHTTPHandler(
		createUserUC,
		listUsersUC,
		overviewUC,
		pendingRequestsUC,
		getStockUC,
		updateStockUC,
		listVentilatorsUC,
		updateVentUC,
		log,
	)

	mux := http.NewServeMux()

	authMiddleware := transport.AdminAuthMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, authMiddleware)

	addr := fmt.Sprintf(":%d", cfg.Services.AdminServicePort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "admin_service_stopping", Message: "shutting down admin service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	} else {
		log.Info(logger.Entry{Action: "http_server_stopped", Message: "http server stopped gracefully"})
	}

	log.Info(logger.Entry{Action: "admin_service_stopped", Message: "admin service stopped"})
}
